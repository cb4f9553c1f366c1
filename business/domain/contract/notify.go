package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/epicevents/crm/business/broker/rabbitmq"
)

const queue = "queue_contracts_signed"

// BrokerNotifier publishes signing notifications onto the telemetry queue.
type BrokerNotifier struct {
	client *rabbitmq.Client
}

// NewBrokerNotifier declares the telemetry queue and returns the notifier.
func NewBrokerNotifier(client *rabbitmq.Client) (*BrokerNotifier, error) {
	if err := client.DeclareQueue(queue); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	return &BrokerNotifier{client: client}, nil
}

func (n *BrokerNotifier) ContractSigned(ctx context.Context, ct Contract) error {
	bs, err := json.Marshal(struct {
		Message    string `json:"message"`
		ContractID string `json:"contractId"`
		CustomerID string `json:"customerId"`
	}{
		Message:    "New contract signed",
		ContractID: ct.ID.String(),
		CustomerID: ct.CustomerID.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := n.client.Publish(queue, bs); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// LogNotifier reports signing notifications through the logger. It is the
// default when no broker is configured.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) ContractSigned(ctx context.Context, ct Contract) error {
	n.Log.Info("new contract signed", "contractId", ct.ID.String(), "customerId", ct.CustomerID.String())
	return nil
}
