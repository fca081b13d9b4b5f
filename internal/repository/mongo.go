package repository

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-backend/internal/models"
)

// MongoStore implements Store on top of a MongoDB database using the
// products and orders collections.
type MongoStore struct {
	products *mongo.Collection
	orders   *mongo.Collection
}

// NewMongoStore creates a store bound to the given database
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		products: db.Collection("products"),
		orders:   db.Collection("orders"),
	}
}

// Document shapes as persisted. Ids are ObjectIDs inside MongoDB and hex
// strings everywhere above this layer.

type productDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Price float64            `bson:"price"`
	Sizes []models.Size      `bson:"sizes"`
}

type productSummaryDoc struct {
	ID    primitive.ObjectID `bson:"_id"`
	Name  string             `bson:"name"`
	Price float64            `bson:"price"`
}

type orderDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID string             `bson:"userId"`
	Items  []orderItemDoc     `bson:"items"`
}

type orderItemDoc struct {
	ProductID primitive.ObjectID `bson:"productId"`
	Qty       int                `bson:"qty"`
}

type joinedOrderDoc struct {
	ID    primitive.ObjectID `bson:"_id"`
	Items []joinedItemDoc    `bson:"items"`
	Total float64            `bson:"total"`
}

type joinedItemDoc struct {
	ProductID primitive.ObjectID `bson:"productId"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Qty       int                `bson:"qty"`
}

// InsertProduct persists a product and returns the generated id
func (s *MongoStore) InsertProduct(ctx context.Context, product models.Product) (string, error) {
	doc := productDoc{
		Name:  product.Name,
		Price: product.Price,
		Sizes: product.Sizes,
	}

	res, err := s.products.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert product: %w", err)
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// FindProducts lists the catalog ordered by ascending id. The name filter
// is quoted with regexp.QuoteMeta so user input always matches literally,
// never as a pattern.
func (s *MongoStore) FindProducts(ctx context.Context, filter ProductFilter, offset, limit int) ([]models.ProductSummary, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}
	if filter.Size != "" {
		query["sizes.size"] = filter.Size
	}

	opts := options.Find().
		SetProjection(bson.M{"sizes": 0}).
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := s.products.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	var docs []productSummaryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	summaries := make([]models.ProductSummary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, models.ProductSummary{
			ID:    d.ID.Hex(),
			Name:  d.Name,
			Price: d.Price,
		})
	}
	return summaries, nil
}

// GetProduct returns a single product by its hex id
func (s *MongoStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var doc productDoc
	err = s.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &models.Product{
		ID:    doc.ID.Hex(),
		Name:  doc.Name,
		Price: doc.Price,
		Sizes: doc.Sizes,
	}, nil
}

// InsertOrder persists an order and returns the generated id. Product
// references are stored as ObjectIDs; their existence is not checked.
func (s *MongoStore) InsertOrder(ctx context.Context, order models.Order) (string, error) {
	items := make([]orderItemDoc, 0, len(order.Items))
	for _, item := range order.Items {
		oid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return "", ErrInvalidID
		}
		items = append(items, orderItemDoc{ProductID: oid, Qty: item.Qty})
	}

	res, err := s.orders.InsertOne(ctx, orderDoc{UserID: order.UserID, Items: items})
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// AggregateOrdersByUser runs the order/product join as a native
// aggregation pipeline. Windowing happens before the $lookup, so
// pagination applies to orders rather than joined lines. Items are pushed
// as null when the lookup found no product and filtered out afterwards,
// which keeps orders with only dangling references in the result.
func (s *MongoStore) AggregateOrdersByUser(ctx context.Context, userID string, offset, limit int) ([]JoinedOrder, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		bson.D{{Key: "$skip", Value: int64(offset)}},
		bson.D{{Key: "$limit", Value: int64(limit)}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$items"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "products"},
			{Key: "localField", Value: "items.productId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$product"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "items", Value: bson.D{{Key: "$push", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$ne", Value: bson.A{
						bson.D{{Key: "$ifNull", Value: bson.A{"$product", nil}}},
						nil,
					}}},
					bson.D{
						{Key: "productId", Value: "$product._id"},
						{Key: "name", Value: "$product.name"},
						{Key: "price", Value: "$product.price"},
						{Key: "qty", Value: "$items.qty"},
					},
					nil,
				}},
			}}}},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "items", Value: bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: "$items"},
				{Key: "as", Value: "item"},
				{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$item", nil}}}},
			}}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "items", Value: 1},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$map", Value: bson.D{
				{Key: "input", Value: "$items"},
				{Key: "as", Value: "item"},
				{Key: "in", Value: bson.D{{Key: "$multiply", Value: bson.A{"$$item.price", "$$item.qty"}}}},
			}}}}}},
		}}},
		// $group emits in unspecified order; restore insertion order
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate orders: %w", err)
	}

	var docs []joinedOrderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	joined := make([]JoinedOrder, 0, len(docs))
	for _, d := range docs {
		items := make([]JoinedItem, 0, len(d.Items))
		for _, item := range d.Items {
			items = append(items, JoinedItem{
				ProductID: item.ProductID.Hex(),
				Name:      item.Name,
				Price:     item.Price,
				Qty:       item.Qty,
			})
		}
		joined = append(joined, JoinedOrder{ID: d.ID.Hex(), Items: items, Total: d.Total})
	}
	return joined, nil
}
