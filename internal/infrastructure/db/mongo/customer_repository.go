package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/ports"
)

type customerDocument struct {
	ID       string             `bson:"_id"`
	Location *domain.Coordinate `bson:"location,omitempty"`
	Address  string             `bson:"address,omitempty"`
	Pincode  string             `bson:"pincode,omitempty"`
}

type CustomerRepository struct {
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{col: db.Collection(collectionCustomers)}
}

// Find retrieves a customer's profile record.
func (r *CustomerRepository) Find(ctx context.Context, customerID string) (*ports.CustomerRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc customerDocument
	err := r.col.FindOne(ctx, bson.M{"_id": customerID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return &ports.CustomerRecord{
		ID:       doc.ID,
		Location: doc.Location,
		Address:  doc.Address,
		Pincode:  doc.Pincode,
	}, nil
}

// UpdateLocation upserts the customer's last known coordinate.
func (r *CustomerRepository) UpdateLocation(ctx context.Context, customerID string, loc domain.Coordinate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": customerID},
		bson.M{"$set": bson.M{"location": loc}},
		options.Update().SetUpsert(true))
	return err
}

// UpdateAddress upserts the customer's delivery address and pincode.
func (r *CustomerRepository) UpdateAddress(ctx context.Context, customerID, address, pincode string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": customerID},
		bson.M{"$set": bson.M{"address": address, "pincode": pincode}},
		options.Update().SetUpsert(true))
	return err
}
