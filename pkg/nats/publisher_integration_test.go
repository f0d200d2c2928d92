package nats

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/abgdnv/productcatalog/pkg/messaging/events"
	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/nats"
)

// skipIntegrationTests is the environment variable that controls whether to skip integration tests.
const skipIntegrationTests = "PRODUCT_SVC_SKIP_INTEGRATION_TESTS"
const natsImg = "nats:2.11.6-alpine"

// PublisherSuite runs the JetStream publisher against a real NATS server.
type PublisherSuite struct {
	suite.Suite
	ctx           context.Context
	logger        *slog.Logger
	natsContainer *nats.NATSContainer
	nc            *natsgo.Conn
	js            jetstream.JetStream
}

func (s *PublisherSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var err error
	s.natsContainer, err = nats.Run(s.ctx, natsImg)
	require.NoError(s.T(), err, "Failed to run NATS container")

	natsURL, err := s.natsContainer.ConnectionString(s.ctx)
	require.NoError(s.T(), err)

	s.nc, err = NewClient(natsURL, 5*time.Second)
	require.NoError(s.T(), err, "Failed to connect to NATS")

	s.js, err = NewJetStreamContext(s.nc)
	require.NoError(s.T(), err, "Failed to get JetStream context")
	s.logger.Info("Initialization complete for PublisherSuite")
}

func (s *PublisherSuite) TearDownSuite() {
	s.nc.Close()
	if err := testcontainers.TerminateContainer(s.natsContainer); err != nil {
		s.logger.Error("Failed to terminate NATS container", "error", err)
	}
}

func TestPublisherIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) TestEnsureStream_Idempotent() {
	name := "STREAM_" + uuid.NewString()[:8]

	_, err := EnsureStream(s.ctx, s.js, name, "idem.>")
	s.Require().NoError(err)
	stream, err := EnsureStream(s.ctx, s.js, name, "idem.>")
	s.Require().NoError(err)

	info, err := stream.Info(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"idem.>"}, info.Config.Subjects)
}

func (s *PublisherSuite) TestPublish_ProductChangedEvent() {
	// given
	name := "PRODUCTS_" + uuid.NewString()[:8]
	stream, err := EnsureStream(s.ctx, s.js, name, messaging.ProductSubjects)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = s.js.DeleteStream(s.ctx, name) })

	publisher := NewNatsPublisher(s.js)
	event := events.ProductChangedEvent{Kind: events.ProductDeleted, ProductID: 42, OccurredAt: time.Now().UTC()}

	// when
	err = publisher.Publish(s.ctx, event)

	// then
	s.Require().NoError(err)
	msg, err := stream.GetLastMsgForSubject(s.ctx, messaging.ProductDeletedSubject)
	s.Require().NoError(err)

	var got events.ProductChangedEvent
	s.Require().NoError(json.Unmarshal(msg.Data, &got))
	s.Equal(events.ProductDeleted, got.Kind)
	s.Equal(int64(42), got.ProductID)
}

type unboundEvent struct{ subject string }

func (e unboundEvent) Subject() string { return e.subject }
func (e unboundEvent) Payload() ([]byte, error) { return []byte(`{}`), nil }

func (s *PublisherSuite) TestPublish_NoStreamFails() {
	publisher := NewNatsPublisher(s.js)

	ctx, cancel := context.WithTimeout(s.ctx, 2*time.Second)
	defer cancel()
	err := publisher.Publish(ctx, unboundEvent{subject: "unbound." + uuid.NewString()})

	s.Error(err)
}
