package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicore/patients-api/internal/core/domain"
)

const patientsCollection = "patients"

type MongoPatientRepository struct {
	coll *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *MongoPatientRepository {
	return &MongoPatientRepository{coll: db.Collection(patientsCollection)}
}

type mongoPatient struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"first_name"`
	LastName    string             `bson:"last_name"`
	Email       string             `bson:"email"`
	PhoneNumber string             `bson:"phone_number,omitempty"`
	DOB         string             `bson:"dob,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoPatientRepository) Create(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	doc := toDoc(patient)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert patient: %w", err)
	}

	created := *patient
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoPatientRepository) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidPatientID
	}

	var mp mongoPatient
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}

	return fromDoc(mp), nil
}

// FindAll returns patients newest-first, bounded by limit/offset.
func (r *MongoPatientRepository) FindAll(ctx context.Context, limit, offset int64) ([]domain.Patient, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer cur.Close(ctx)

	patients := make([]domain.Patient, 0)
	for cur.Next(ctx) {
		var mp mongoPatient
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode patient: %w", err)
		}
		patients = append(patients, *fromDoc(mp))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (r *MongoPatientRepository) Update(ctx context.Context, id string, patient *domain.Patient) (*domain.Patient, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidPatientID
	}

	update := bson.M{"$set": bson.M{
		"first_name":   patient.FirstName,
		"last_name":    patient.LastName,
		"email":        patient.Email,
		"phone_number": patient.PhoneNumber,
		"dob":          patient.DOB,
		"updated_at":   patient.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPatientNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *MongoPatientRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidPatientID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

func toDoc(p *domain.Patient) mongoPatient {
	return mongoPatient{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		DOB:         p.DOB,
		CreatedAt:   p.CreatedAt.Unix(),
		UpdatedAt:   p.UpdatedAt.Unix(),
	}
}

func fromDoc(mp mongoPatient) *domain.Patient {
	return &domain.Patient{
		ID:          mp.ID.Hex(),
		FirstName:   mp.FirstName,
		LastName:    mp.LastName,
		Email:       mp.Email,
		PhoneNumber: mp.PhoneNumber,
		DOB:         mp.DOB,
		CreatedAt:   unixToTime(mp.CreatedAt),
		UpdatedAt:   unixToTime(mp.UpdatedAt),
	}
}
