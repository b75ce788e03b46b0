package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// DynamoStore implements DocumentStore on a DynamoDB table keyed by
// (collection, id). Document bodies are stored as a JSON string attribute.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

// dynamoDocument represents the DynamoDB item structure
type dynamoDocument struct {
	Collection string `dynamodbav:"collection"`
	ID         string `dynamodbav:"id"`
	Data       string `dynamodbav:"data"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

func NewDynamoStore(client *dynamodb.Client, tableName string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
	}
}

func (ds *DynamoStore) Find(ctx context.Context, collection, id string) (Document, error) {
	out, err := ds.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ds.tableName),
		Key:       documentKey(collection, id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var item dynamoDocument
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(item.Data), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (ds *DynamoStore) FindAll(ctx context.Context, collection string) ([]Document, error) {
	var docs []Document

	paginator := dynamodb.NewQueryPaginator(ds.client, &dynamodb.QueryInput{
		TableName:              aws.String(ds.tableName),
		KeyConditionExpression: aws.String("#c = :collection"),
		ExpressionAttributeNames: map[string]string{
			"#c": "collection",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":collection": &types.AttributeValueMemberS{Value: collection},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
		}

		var items []dynamoDocument
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal documents: %w", err)
		}

		for _, item := range items {
			var doc Document
			if err := json.Unmarshal([]byte(item.Data), &doc); err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (ds *DynamoStore) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.New().String()
		doc["id"] = id
	}

	av, err := ds.marshalItem(collection, id, doc)
	if err != nil {
		return "", err
	}

	// Conditional write so an existing document is never clobbered
	_, err = ds.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(ds.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#c)"),
		ExpressionAttributeNames: map[string]string{
			"#c": "collection",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to put document: %w", err)
	}
	return id, nil
}

func (ds *DynamoStore) Update(ctx context.Context, collection, id string, doc Document) error {
	doc["id"] = id

	av, err := ds.marshalItem(collection, id, doc)
	if err != nil {
		return err
	}

	_, err = ds.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(ds.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#c)"),
		ExpressionAttributeNames: map[string]string{
			"#c": "collection",
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func (ds *DynamoStore) Delete(ctx context.Context, collection, id string) error {
	out, err := ds.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(ds.tableName),
		Key:          documentKey(collection, id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if out.Attributes == nil {
		return ErrNotFound
	}
	return nil
}

func (ds *DynamoStore) marshalItem(collection, id string, doc Document) (map[string]types.AttributeValue, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339Nano)
	av, err := attributevalue.MarshalMap(dynamoDocument{
		Collection: collection,
		ID:         id,
		Data:       string(data),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return av, nil
}

func documentKey(collection, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"collection": &types.AttributeValueMemberS{Value: collection},
		"id":         &types.AttributeValueMemberS{Value: id},
	}
}
