package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	pubsub "cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/clearlane/settleledger/pkg/logger"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errProjectIDRequired = errors.New("gcp project id is required")

// PubSubPublisher relays envelopes to a Google Pub/Sub topic.
type PubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	topic     string
}

// NewPubSubPublisher creates a Pub/Sub v2 client and verifies the configured
// topic exists.
func NewPubSubPublisher(ctx context.Context, projectID, topic string, logg *logger.Logger) (*PubSubPublisher, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, errProjectIDRequired
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("pubsub topic name is required")
	}

	psClient, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	fullName := topicResourceName(projectID, topic)
	if _, err := psClient.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: fullName}); err != nil {
		_ = psClient.Close()
		// v2 uses gRPC errors; NotFound means the topic doesn't exist.
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("topic %q does not exist", topic)
		}
		return nil, fmt.Errorf("checking topic %q: %w", topic, err)
	}

	if logg != nil {
		logg.Info(ctx, "pubsub event relay initialized")
	}

	return &PubSubPublisher{
		client:    psClient,
		publisher: psClient.Publisher(fullName),
		topic:     topic,
	}, nil
}

// Publish sends one envelope and waits for the server acknowledgement.
func (p *PubSubPublisher) Publish(ctx context.Context, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("serializing event envelope: %w", err)
	}
	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"name": env.Name,
			"txId": env.TxID,
		},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publishing event %q: %w", env.Name, err)
	}
	return nil
}

// Close releases the Pub/Sub client resources.
func (p *PubSubPublisher) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	p.publisher.Stop()
	return p.client.Close()
}

func topicResourceName(projectID, topic string) string {
	if strings.HasPrefix(topic, "projects/") && strings.Contains(topic, "/topics/") {
		return topic
	}
	return fmt.Sprintf("projects/%s/topics/%s", projectID, topic)
}
