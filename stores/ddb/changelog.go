package ddb

import (
	"context"
	"sync"

	"github.com/avast/retry-go"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	tally "github.com/weegigs/tally-go"
)

// DynamoDB is the slice of the DynamoDB client the change log relies on.
type DynamoDB interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type ChangeTableName string

func (name ChangeTableName) String() string {
	return string(name)
}

type ChangeLogOption func(log *ChangeLog)

func WithLogger(logger *zerolog.Logger) ChangeLogOption {
	return func(log *ChangeLog) {
		log.log = logger
	}
}

func WithBuffer(size int) ChangeLogOption {
	return func(log *ChangeLog) {
		log.buffer = size
	}
}

func WithLedgerName(name string) ChangeLogOption {
	return func(log *ChangeLog) {
		log.ledger = name
	}
}

// ChangeLog appends counter change records to a DynamoDB table. It
// implements tally.ChangeListener; records are buffered and written by a
// background worker so that publishing a record never blocks the mutation
// that produced it. When the buffer is full the record is dropped with a
// warning rather than stalling the counter.
type ChangeLog struct {
	db      DynamoDB
	table   string
	ledger  string
	log     *zerolog.Logger
	ids     *ChangeIDGenerator
	buffer  int
	records chan tally.ChangeRecord
	done    chan struct{}
	closing sync.Once
}

const defaultBuffer = 256

func NewChangeLog(db DynamoDB, table ChangeTableName, options ...ChangeLogOption) *ChangeLog {
	changelog := &ChangeLog{
		db:     db,
		table:  string(table),
		ledger: "tally",
		ids:    NewChangeIDGenerator(),
		buffer: defaultBuffer,
	}

	for _, option := range options {
		option(changelog)
	}

	if changelog.log == nil {
		changelog.log = &log.Logger
	}

	changelog.records = make(chan tally.ChangeRecord, changelog.buffer)
	changelog.done = make(chan struct{})

	go changelog.run()

	return changelog
}

func (l *ChangeLog) HandleChange(record tally.ChangeRecord) {
	defer func() {
		if recover() != nil {
			l.log.Warn().Uint64("value", record.Value).Msg("change log closed, dropping record")
		}
	}()

	select {
	case l.records <- record:
	default:
		l.log.Warn().Uint64("value", record.Value).Msg("change log buffer full, dropping record")
	}
}

// Close stops the worker after draining any buffered records. Closing twice
// is harmless; records handled after Close are dropped.
func (l *ChangeLog) Close() {
	l.closing.Do(func() {
		close(l.records)
	})
	<-l.done
}

func (l *ChangeLog) run() {
	defer close(l.done)

	for record := range l.records {
		if err := l.append(context.Background(), record); err != nil {
			l.log.Error().Err(err).Uint64("value", record.Value).Msg("failed to append change record")
		}
	}
}

type changeItem struct {
	PartitionKey string `dynamodbav:"pk"`
	SortKey      string `dynamodbav:"sk"`
	Value        uint64 `dynamodbav:"value"`
	Direction    string `dynamodbav:"direction"`
	Timestamp    string `dynamodbav:"timestamp"`
}

const changePrefix = "change#"

func (l *ChangeLog) append(ctx context.Context, record tally.ChangeRecord) error {
	timestamp, err := record.Timestamp.Time()
	if err != nil {
		return errors.Wrap(err, "invalid record timestamp")
	}

	item, err := attributevalue.MarshalMap(changeItem{
		PartitionKey: l.ledger,
		SortKey:      changePrefix + l.ids.NewChangeID(timestamp).String(),
		Value:        record.Value,
		Direction:    record.Direction.String(),
		Timestamp:    record.Timestamp.String(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal change record")
	}

	return retry.Do(
		func() error {
			_, err := l.db.PutItem(ctx, &dynamodb.PutItemInput{
				TableName: aws.String(l.table),
				Item:      item,
			})
			return err
		},
		retry.Attempts(3),
		retry.Context(ctx),
	)
}

// Latest returns the most recently appended change record, or nil when the
// log is empty.
func (l *ChangeLog) Latest(ctx context.Context) (*tally.ChangeRecord, error) {
	query := expression.Key("pk").Equal(expression.Value(l.ledger)).And(
		expression.Key("sk").BeginsWith(changePrefix),
	)

	expr, err := expression.NewBuilder().WithKeyCondition(query).Build()
	if err != nil {
		return nil, err
	}

	out, err := l.db.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(l.table),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		KeyConditionExpression:    expr.KeyCondition(),
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to query change log")
	}

	var items []changeItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal change records")
	}

	if len(items) == 0 {
		return nil, nil
	}

	return &tally.ChangeRecord{
		Value:     items[0].Value,
		Timestamp: tally.Timestamp(items[0].Timestamp),
		Direction: tally.Direction(items[0].Direction),
	}, nil
}
