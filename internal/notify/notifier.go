// Package notify publishes best-effort push notifications to donors. Delivery
// is not guaranteed; failures are logged and skipped per recipient.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"bloodlink/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"
)

// Publisher is the slice of the SNS client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Notifier struct {
	client   Publisher
	topicARN string
	logger   *logrus.Logger
}

func NewNotifier(client Publisher, topicARN string, logger *logrus.Logger) *Notifier {
	return &Notifier{client: client, topicARN: topicARN, logger: logger}
}

type alertPayload struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	RequestID  string `json:"requestId,omitempty"`
	BloodGroup string `json:"bloodGroup,omitempty"`
	Location   string `json:"location,omitempty"`
}

// AlertCompatibleDonors pushes an urgent-request alert to every available
// donor with a matching blood group and a delivery token. Donors without a
// token are skipped silently; per-donor publish failures are logged and do not
// stop the rest.
func (n *Notifier) AlertCompatibleDonors(ctx context.Context, request *types.BloodRequest, donors []*types.Donor) int {

	payload := alertPayload{
		Title:      fmt.Sprintf("%s blood needed in %s", request.BloodGroup, request.Location),
		Body:       fmt.Sprintf("An urgent request for %s blood was just posted near %s.", request.BloodGroup, request.Location),
		RequestID:  request.ID,
		BloodGroup: string(request.BloodGroup),
		Location:   request.Location,
	}

	message, err := json.Marshal(payload)
	if err != nil {
		n.logger.WithError(err).Error("failed to encode donor alert")
		return 0
	}

	sent := 0
	for _, donor := range donors {
		if donor.FCMToken == nil || *donor.FCMToken == "" {
			continue
		}
		if donor.BloodGroup != request.BloodGroup {
			continue
		}

		_, err := n.client.Publish(ctx, &sns.PublishInput{
			TargetArn: donor.FCMToken,
			Message:   aws.String(string(message)),
		})
		if err != nil {
			n.logger.WithError(err).WithField("donor_id", donor.ID).Warn("failed to push donor alert")
			continue
		}

		sent++
	}

	n.logger.WithFields(logrus.Fields{
		"request_id": request.ID,
		"sent":       sent,
	}).Info("donor alerts published")

	return sent
}

// Broadcast publishes an admin-composed notification to the shared topic.
func (n *Notifier) Broadcast(ctx context.Context, title, body string) error {

	if n.topicARN == "" {
		return fmt.Errorf("no notification topic configured")
	}

	message, err := json.Marshal(alertPayload{Title: title, Body: body})
	if err != nil {
		return fmt.Errorf("encode broadcast: %w", err)
	}

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(string(message)),
		Subject:  aws.String(title),
	})
	if err != nil {
		return fmt.Errorf("publish broadcast: %w", err)
	}

	return nil
}
