package db

import (
	"strconv"

	"github.com/jsphweid/flattenmidi/constants"
	"github.com/jsphweid/flattenmidi/model"
	"github.com/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

func newClient() (dynamodbiface.DynamoDBAPI, error) {
	endpoint := constants.GetDynamoEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetDynamoRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return dynamodb.New(session), nil
}

func number(n int) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(strconv.Itoa(n))}
}

func str(s string) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{S: aws.String(s)}
}

func SummaryToItem(s model.RunSummary) map[string]*dynamodb.AttributeValue {
	item := map[string]*dynamodb.AttributeValue{
		"PK":              str(s.RunId),
		"Strategy":        str(s.Strategy),
		"MaxVoices":       number(s.MaxVoices),
		"Voices":          number(s.Voices),
		"AutoOptimized":   {BOOL: aws.Bool(s.AutoOptimized)},
		"NumInputNotes":   number(s.NumInputNotes),
		"NumOutputNotes":  number(s.NumOutputNotes),
		"NumMetaEvents":   number(s.NumMetaEvents),
		"MaxSimultaneous": number(s.MaxSimultaneous),
		"Dropped":         number(s.Dropped),
		"Truncated":       number(s.Truncated),
		"Replaced":        number(s.Replaced),
	}
	// empty strings are not valid attribute values
	if s.Input != "" {
		item["Input"] = str(s.Input)
	}
	if s.Output != "" {
		item["Output"] = str(s.Output)
	}
	return item
}

func PutRunSummary(client dynamodbiface.DynamoDBAPI, s model.RunSummary) error {
	if s.RunId == "" {
		return errors.New("run summary has no id")
	}
	_, err := client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(constants.GetRunsTable()),
		Item:      SummaryToItem(s),
	})
	if err != nil {
		return errors.Wrap(err, "error from DynamoDB")
	}
	return nil
}

// RecordRun stores s in the runs table at the configured endpoint.
func RecordRun(s model.RunSummary) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	return PutRunSummary(client, s)
}
