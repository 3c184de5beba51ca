package aws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQS struct {
	inputs  []*sqs.SendMessageInput
	sendErr error
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &sqs.SendMessageOutput{}, nil
}

func TestPublishOrderPlaced(t *testing.T) {
	client := &fakeSQS{}
	p := NewPublisher(client, "https://sqs.example.com/orders")

	msg := OrderPlacedMessage{
		OrderID:       42,
		CustomerID:    7,
		ProductID:     1,
		TotalPrice:    "59.97",
		CorrelationID: "corr-1",
	}
	if err := p.PublishOrderPlaced(context.Background(), msg); err != nil {
		t.Fatalf("PublishOrderPlaced error: %v", err)
	}

	if len(client.inputs) != 1 {
		t.Fatalf("expected 1 send, got %d", len(client.inputs))
	}
	input := client.inputs[0]
	if *input.QueueUrl != "https://sqs.example.com/orders" {
		t.Fatalf("unexpected queue url: %s", *input.QueueUrl)
	}

	var decoded OrderPlacedMessage
	if err := json.Unmarshal([]byte(*input.MessageBody), &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if decoded != msg {
		t.Fatalf("round-tripped message mismatch: %+v", decoded)
	}

	attr, ok := input.MessageAttributes["correlation_id"]
	if !ok || *attr.StringValue != "corr-1" {
		t.Fatalf("correlation_id attribute missing or wrong: %+v", input.MessageAttributes)
	}
}

func TestPublishOrderPlaced_SendFailure(t *testing.T) {
	client := &fakeSQS{sendErr: errors.New("throttled")}
	p := NewPublisher(client, "https://sqs.example.com/orders")

	err := p.PublishOrderPlaced(context.Background(), OrderPlacedMessage{OrderID: 1})
	if err == nil {
		t.Fatal("expected error from failed send")
	}
}
