package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nearshop/geocore/internal/core/ports"
)

const (
	collectionShops     = "shops"
	collectionCustomers = "customers"
)

// shopDocument is the persisted shape of a shop. The geofence is stored
// as the raw JSON string uploaded by the shop owner; parsing is the
// discovery service's job, not the repository's.
type shopDocument struct {
	ID           string `bson:"_id"`
	Name         string `bson:"name"`
	Location     string `bson:"location"`
	Pincode      string `bson:"pincode"`
	GeofenceJSON string `bson:"coordinates_json"`
}

type ShopRepository struct {
	shops     *mongo.Collection
	customers *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{
		shops:     db.Collection(collectionShops),
		customers: db.Collection(collectionCustomers),
	}
}

// ListForCustomer returns shop records visible to the customer. When the
// customer has a pincode on file the listing is scoped to it; otherwise
// all shops are returned and distance filtering prunes the rest.
func (r *ShopRepository) ListForCustomer(ctx context.Context, customerID string) ([]ports.ShopRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if pincode := r.customerPincode(ctx, customerID); pincode != "" {
		filter["pincode"] = pincode
	}

	cursor, err := r.shops.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []ports.ShopRecord
	for cursor.Next(ctx) {
		var doc shopDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, ports.ShopRecord{
			ID:           doc.ID,
			Name:         doc.Name,
			Location:     doc.Location,
			Pincode:      doc.Pincode,
			GeofenceJSON: doc.GeofenceJSON,
		})
	}
	return records, cursor.Err()
}

func (r *ShopRepository) customerPincode(ctx context.Context, customerID string) string {
	var doc struct {
		Pincode string `bson:"pincode"`
	}
	err := r.customers.FindOne(ctx, bson.M{"_id": customerID}).Decode(&doc)
	if err != nil {
		return ""
	}
	return doc.Pincode
}

// EnsureIndexes creates necessary indexes on the shops collection.
func (r *ShopRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "pincode", Value: 1}}},
	}

	_, err := r.shops.Indexes().CreateMany(ctx, indexes)
	return err
}
