package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/diatonicpad/model"
	"github.com/stretchr/testify/assert"
)

type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items   map[string]map[string]*dynamodb.AttributeValue
	created bool
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) PutItemWithContext(_ aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.items[*in.Item["PK"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItemWithContext(_ aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[*in.Key["PK"].S]}, nil
}

func (f *fakeDynamo) ScanPagesWithContext(_ aws.Context, _ *dynamodb.ScanInput, fn func(*dynamodb.ScanOutput, bool) bool, _ ...request.Option) error {
	page := &dynamodb.ScanOutput{}
	for _, item := range f.items {
		page.Items = append(page.Items, item)
	}
	fn(page, true)
	return nil
}

func (f *fakeDynamo) DescribeTableWithContext(_ aws.Context, _ *dynamodb.DescribeTableInput, _ ...request.Option) (*dynamodb.DescribeTableOutput, error) {
	if f.created {
		return &dynamodb.DescribeTableOutput{}, nil
	}
	return nil, awserr.New(dynamodb.ErrCodeResourceNotFoundException, "no table", nil)
}

func (f *fakeDynamo) CreateTableWithContext(_ aws.Context, _ *dynamodb.CreateTableInput, _ ...request.Option) (*dynamodb.CreateTableOutput, error) {
	f.created = true
	return &dynamodb.CreateTableOutput{}, nil
}

func progression(name string, created time.Time) *model.Progression {
	p := model.NewProgression(model.DefaultContext())
	p.Name = name
	p.CreatedAt = created
	p.UpdatedAt = created
	p.Events = []model.ChordEvent{
		{Degree: "I", Quality: "maj", Inversion: "root", Voicing: "drop2", DurationBeats: 1},
		{Degree: "V", Quality: "maj7", Tension: model.NewTensions(7), Inversion: "first", Voicing: "closed", DurationBeats: 2, Sustain: true},
	}
	return p
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"file":   NewFile(filepath.Join(t.TempDir(), "data", "progressions.json")),
		"dynamo": NewDynamoWithClient(newFakeDynamo(), "test"),
	}
}

func TestSaveLoadList(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
			a := progression("a", base)
			b := progression("b", base.Add(time.Minute))

			assert := assert.New(t)
			all, err := s.List(ctx)
			assert.NoError(err)
			assert.Empty(all)
			_, err = Latest(ctx, s)
			assert.ErrorIs(err, ErrNotFound)

			assert.NoError(s.Save(ctx, a))
			assert.NoError(s.Save(ctx, b))

			got, err := s.Load(ctx, a.ID)
			assert.NoError(err)
			assert.Equal(a.Name, got.Name)
			assert.Equal(a.Events, got.Events)
			assert.Equal(*a.KeySetting, *got.KeySetting)
			assert.True(a.CreatedAt.Equal(got.CreatedAt))

			latest, err := Latest(ctx, s)
			assert.NoError(err)
			assert.Equal(b.ID, latest.ID)

			_, err = s.Load(ctx, "missing")
			assert.ErrorIs(err, ErrNotFound)
		})
	}
}

func TestSaveUpsertsById(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := progression("first", time.Now())
			assert.NoError(t, s.Save(ctx, p))
			p.Name = "renamed"
			p.Events = p.Events[:1]
			assert.NoError(t, s.Save(ctx, p))

			all, err := s.List(ctx)
			assert.NoError(t, err)
			assert.Len(t, all, 1)
			assert.Equal(t, "renamed", all[0].Name)
			assert.Len(t, all[0].Events, 1)
		})
	}
}

func TestFileKeepsInsertionOrder(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), "p.json"))
	ctx := context.Background()
	now := time.Now()
	first := progression("first", now)
	second := progression("second", now.Add(-time.Hour))
	s.Save(ctx, first)
	s.Save(ctx, second)

	latest, err := Latest(ctx, s)
	assert.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestEnsureTable(t *testing.T) {
	fake := newFakeDynamo()
	d := NewDynamoWithClient(fake, "test")
	assert.NoError(t, d.EnsureTable(context.Background()))
	assert.True(t, fake.created)
	assert.NoError(t, d.EnsureTable(context.Background()))
}
