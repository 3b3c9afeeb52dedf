package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fad/pkg/errors"
	"fad/pkg/logger"
)

// setIfUnchanged writes data to ref. When expected is set the write runs in a
// transaction and fails with a stale write if the stored updatedAt differs.
func setIfUnchanged(ctx context.Context, client *firestore.Client, ref *firestore.DocumentRef, data interface{}, expected *time.Time, resource string) error {
	if expected == nil {
		if _, err := ref.Set(ctx, data); err != nil {
			return errors.Internal("Failed to update "+strings.ToLower(resource), err)
		}
		return nil
	}

	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound(resource, err)
			}
			return err
		}

		stored, _ := doc.DataAt("updatedAt")
		current, _ := stored.(time.Time)
		if !current.Equal(*expected) {
			return errors.StaleWrite(resource, map[string]interface{}{"updated_at": current})
		}

		return tx.Set(ref, data)
	})
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return err
		}
		return errors.Internal("Failed to update "+strings.ToLower(resource), err)
	}
	return nil
}

// count runs a server-side count aggregation over q.
func count(ctx context.Context, q firestore.Query) (int64, error) {
	results, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, err
	}

	value, ok := results["all"]
	if !ok {
		return 0, nil
	}
	pb, ok := value.(*firestorepb.Value)
	if !ok {
		return 0, nil
	}
	return pb.GetIntegerValue(), nil
}

// collect decodes every document of q into T, skipping documents that fail to parse.
func collect[T any](ctx context.Context, q firestore.Query, resource string) ([]*T, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	items := []*T{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate "+strings.ToLower(resource), err)
		}

		var item T
		if err := doc.DataTo(&item); err != nil {
			logger.Error("Failed to parse %s %s: %v", strings.ToLower(resource), doc.Ref.ID, err)
			continue
		}
		items = append(items, &item)
	}
	return items, nil
}

// getDoc loads one document by id into T.
func getDoc[T any](ctx context.Context, ref *firestore.DocumentRef, resource string) (*T, error) {
	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound(resource, err)
		}
		return nil, errors.Internal("Failed to get "+strings.ToLower(resource), err)
	}

	var item T
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse "+strings.ToLower(resource)+" data", err)
	}
	return &item, nil
}

func whereStatuses(q firestore.Query, field string, statuses []string) firestore.Query {
	switch len(statuses) {
	case 0:
		return q
	case 1:
		return q.Where(field, "==", statuses[0])
	}
	return q.Where(field, "in", statuses)
}
