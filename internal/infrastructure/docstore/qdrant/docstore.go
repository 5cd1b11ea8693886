// Package qdrant provides a Docstore implementation using Qdrant.
package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
	"github.com/denshoproject/namesdb-editor/internal/infrastructure/config"
)

// VectorSize is the dimension of the name-embedding vectors.
const VectorSize = 1536

// indexedKinds are the record kinds that get a collection each.
var indexedKinds = []entities.Kind{
	entities.KindPerson,
	entities.KindFarRecord,
	entities.KindWraRecord,
}

// Docstore implements ports.Docstore using Qdrant, one collection per
// record kind.
type Docstore struct {
	collections pb.CollectionsClient
	points      pb.PointsClient
	prefix      string
	conn        *grpc.ClientConn
}

// NewDocstore creates a new Qdrant docstore.
func NewDocstore(cfg config.DocstoreConfig) (*Docstore, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	prefix := cfg.IndexPrefix
	if prefix == "" {
		prefix = "names"
	}

	return &Docstore{
		collections: pb.NewCollectionsClient(conn),
		points:      pb.NewPointsClient(conn),
		prefix:      prefix,
		conn:        conn,
	}, nil
}

// Close closes the gRPC connection.
func (d *Docstore) Close() error {
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// collectionName returns the collection for one record kind.
func (d *Docstore) collectionName(kind entities.Kind) string {
	return fmt.Sprintf("%s_%s", d.prefix, kind)
}

// CreateIndices creates the per-kind collections if missing.
func (d *Docstore) CreateIndices(ctx context.Context) error {
	for _, kind := range indexedKinds {
		name := d.collectionName(kind)
		_, err := d.collections.Get(ctx, &pb.GetCollectionInfoRequest{
			CollectionName: name,
		})
		if err == nil {
			continue
		}

		_, err = d.collections.Create(ctx, &pb.CreateCollection{
			CollectionName: name,
			VectorsConfig: &pb.VectorsConfig{
				Config: &pb.VectorsConfig_Params{
					Params: &pb.VectorParams{
						Size:     VectorSize,
						Distance: pb.Distance_Cosine,
					},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("creating collection %s: %w", name, err)
		}
	}
	return nil
}

// DeleteIndices removes the per-kind collections and all their documents.
func (d *Docstore) DeleteIndices(ctx context.Context) error {
	for _, kind := range indexedKinds {
		name := d.collectionName(kind)
		_, err := d.collections.Delete(ctx, &pb.DeleteCollection{
			CollectionName: name,
		})
		if err != nil {
			return fmt.Errorf("deleting collection %s: %w", name, err)
		}
	}
	return nil
}

// Status reports each collection's existence and point count.
func (d *Docstore) Status(ctx context.Context) ([]ports.IndexStatus, error) {
	statuses := make([]ports.IndexStatus, 0, len(indexedKinds))
	for _, kind := range indexedKinds {
		name := d.collectionName(kind)
		status := ports.IndexStatus{Name: name}

		resp, err := d.collections.Get(ctx, &pb.GetCollectionInfoRequest{
			CollectionName: name,
		})
		if err == nil {
			status.Exists = true
			if resp.Result.PointsCount != nil {
				status.Points = *resp.Result.PointsCount
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// PostRecord upserts one document. Point ids derive from the record's
// kind and natural key, so reposting the same record replaces its point
// instead of duplicating it.
func (d *Docstore) PostRecord(ctx context.Context, doc ports.Document) error {
	pointID := uuid.NewSHA1(uuid.NameSpaceURL, []byte(string(doc.Model)+"/"+doc.ID)).String()

	payload := make(map[string]*pb.Value, len(doc.Body))
	for key, val := range doc.Body {
		payload[key] = valueFromAny(val)
	}

	point := &pb.PointStruct{
		Id: &pb.PointId{
			PointIdOptions: &pb.PointId_Uuid{
				Uuid: pointID,
			},
		},
		Vectors: &pb.Vectors{
			VectorsOptions: &pb.Vectors_Vector{
				Vector: &pb.Vector{
					Data: doc.Vector,
				},
			},
		},
		Payload: payload,
	}

	_, err := d.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: d.collectionName(doc.Model),
		Points:         []*pb.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("upserting point: %w", err)
	}
	return nil
}

// SearchPersons finds persons by name-embedding similarity.
func (d *Docstore) SearchPersons(ctx context.Context, vector []float32, limit int) ([]ports.PersonHit, error) {
	resp, err := d.points.Search(ctx, &pb.SearchPoints{
		CollectionName: d.collectionName(entities.KindPerson),
		Vector:         vector,
		Limit:          uint64(limit),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching persons: %w", err)
	}

	hits := make([]ports.PersonHit, 0, len(resp.Result))
	for _, point := range resp.Result {
		hit := ports.PersonHit{Score: point.Score}
		if val, ok := point.Payload["nr_id"]; ok {
			hit.NRID = val.GetStringValue()
		}
		if val, ok := point.Payload["preferred_name"]; ok {
			hit.PreferredName = val.GetStringValue()
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// valueFromAny converts a Dict() projection value to a Qdrant payload
// value. Projections contain strings, numbers, bools and nested
// list/map structures; anything else degrades to its string form.
func valueFromAny(val any) *pb.Value {
	switch v := val.(type) {
	case nil:
		return &pb.Value{Kind: &pb.Value_NullValue{NullValue: pb.NullValue_NULL_VALUE}}
	case string:
		return &pb.Value{Kind: &pb.Value_StringValue{StringValue: v}}
	case bool:
		return &pb.Value{Kind: &pb.Value_BoolValue{BoolValue: v}}
	case int:
		return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: int64(v)}}
	case int64:
		return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: v}}
	case float64:
		return &pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: v}}
	case []any:
		values := make([]*pb.Value, len(v))
		for i, item := range v {
			values[i] = valueFromAny(item)
		}
		return &pb.Value{Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{Values: values}}}
	case map[string]any:
		fields := make(map[string]*pb.Value, len(v))
		for key, item := range v {
			fields[key] = valueFromAny(item)
		}
		return &pb.Value{Kind: &pb.Value_StructValue{StructValue: &pb.Struct{Fields: fields}}}
	default:
		return &pb.Value{Kind: &pb.Value_StringValue{StringValue: fmt.Sprintf("%v", v)}}
	}
}
