package store

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/diatonicpad/model"
	"github.com/pkg/errors"
)

// Dynamo stores each progression as one item: PK is the id, Body the JSON
// encoding, Name and CreatedAt are copied out for listing.
type Dynamo struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamo(endpoint, region, table string) (*Dynamo, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating DynamoDB session")
	}
	return NewDynamoWithClient(dynamodb.New(sess), table), nil
}

func NewDynamoWithClient(client dynamodbiface.DynamoDBAPI, table string) *Dynamo {
	return &Dynamo{client: client, table: table}
}

// EnsureTable creates the table if it does not exist yet.
func (d *Dynamo) EnsureTable(ctx context.Context) error {
	_, err := d.client.DescribeTableWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(d.table),
	})
	if err == nil {
		return nil
	}
	if aerr, ok := err.(awserr.Error); !ok || aerr.Code() != dynamodb.ErrCodeResourceNotFoundException {
		return errors.Wrapf(err, "describing table %v", d.table)
	}

	_, err = d.client.CreateTableWithContext(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(d.table),
		BillingMode: aws.String(dynamodb.BillingModePayPerRequest),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: aws.String(dynamodb.ScalarAttributeTypeS)},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: aws.String(dynamodb.KeyTypeHash)},
		},
	})
	return errors.Wrapf(err, "creating table %v", d.table)
}

func (d *Dynamo) Save(ctx context.Context, p *model.Progression) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item: map[string]*dynamodb.AttributeValue{
			"PK":        {S: aws.String(p.ID)},
			"Name":      {S: aws.String(p.Name)},
			"CreatedAt": {S: aws.String(p.CreatedAt.Format(time.RFC3339Nano))},
			"Body":      {S: aws.String(string(body))},
		},
	})
	return errors.Wrapf(err, "saving progression %v", p.ID)
}

func decodeItem(item map[string]*dynamodb.AttributeValue) (*model.Progression, error) {
	body, ok := item["Body"]
	if !ok || body.S == nil {
		return nil, errors.New("item has no Body attribute")
	}
	var p model.Progression
	if err := json.Unmarshal([]byte(*body.S), &p); err != nil {
		return nil, errors.Wrap(err, "decoding progression body")
	}
	return &p, nil
}

func (d *Dynamo) Load(ctx context.Context, id string) (*model.Progression, error) {
	out, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "loading progression %v", id)
	}
	if len(out.Item) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "id %v", id)
	}
	return decodeItem(out.Item)
}

func (d *Dynamo) List(ctx context.Context) ([]*model.Progression, error) {
	var res []*model.Progression
	var decodeErr error
	err := d.client.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(d.table),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		for _, item := range page.Items {
			p, err := decodeItem(item)
			if err != nil {
				decodeErr = err
				return false
			}
			res = append(res, p)
		}
		return true
	})
	if err != nil {
		return nil, errors.Wrap(err, "scanning progressions")
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}
