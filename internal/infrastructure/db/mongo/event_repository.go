package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuslink/events-api/internal/core/domain"
	"github.com/campuslink/events-api/internal/core/ports"
)

const collectionEvents = "events"

type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(collectionEvents)}
}

type mongoEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Date        time.Time          `bson:"date"`
	Venue       string             `bson:"venue,omitempty"`
	Capacity    *int               `bson:"capacity,omitempty"`
	Registered  int                `bson:"registered"`
	OrganizerID string             `bson:"organizer_id"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (me *mongoEvent) toDomain() *domain.Event {
	return &domain.Event{
		ID:          me.ID.Hex(),
		Title:       me.Title,
		Description: me.Description,
		Date:        me.Date,
		Venue:       me.Venue,
		Capacity:    me.Capacity,
		Registered:  me.Registered,
		OrganizerID: me.OrganizerID,
		Status:      domain.EventStatus(me.Status),
		CreatedAt:   me.CreatedAt,
		UpdatedAt:   me.UpdatedAt,
	}
}

// Create inserts a new event document.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEvent{
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Venue:       event.Venue,
		Capacity:    event.Capacity,
		Registered:  event.Registered,
		OrganizerID: event.OrganizerID,
		Status:      string(event.Status),
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *event
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEvent
	if err := r.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EventRepository) ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	return r.list(ctx, bson.M{"status": string(status)})
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return r.list(ctx, bson.M{"organizer_id": organizerID})
}

func (r *EventRepository) list(ctx context.Context, filter bson.M) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	events := make([]*domain.Event, 0)
	for cur.Next(ctx) {
		var me mongoEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, me.toDomain())
	}
	return events, cur.Err()
}

// UpdateFields applies a partial update; nil patch fields are left untouched.
func (r *EventRepository) UpdateFields(ctx context.Context, id string, patch ports.EventPatch) (*domain.Event, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Venue != nil {
		set["venue"] = *patch.Venue
	}
	if patch.Capacity != nil {
		set["capacity"] = *patch.Capacity
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var me mongoEvent
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return me.toDomain(), nil
}

// TransitionStatus moves the event between lifecycle statuses. The filter
// matches on the expected current status, so a concurrent transition that got
// there first makes this one a no-match, reported as ErrInvalidTransition.
func (r *EventRepository) TransitionStatus(ctx context.Context, id string, from, to domain.EventStatus) (*domain.Event, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": objID, "status": string(from)}
	update := bson.M{"$set": bson.M{"status": string(to), "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var me mongoEvent
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("transition event status: %w", err)
	}
	return me.toDomain(), nil
}

// AdmitSeat claims one seat with an atomic conditional increment: the update
// matches only while a seat remains (or capacity is unbounded), so concurrent
// registrations can never push the counter past capacity.
func (r *EventRepository) AdmitSeat(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id": objID,
		"$or": bson.A{
			bson.M{"capacity": nil},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$registered", "$capacity"}}},
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"registered": 1}})
	if err != nil {
		return fmt.Errorf("admit seat: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventFull
	}
	return nil
}

// ReleaseSeat gives back a seat claimed by AdmitSeat. The counter is guarded
// against going negative.
func (r *EventRepository) ReleaseSeat(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": objID, "registered": bson.M{"$gt": 0}}
	_, err = r.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"registered": -1}})
	if err != nil {
		return fmt.Errorf("release seat: %w", err)
	}
	return nil
}

// EnsureIndexes creates the listing indexes on the events collection.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "organizer_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
