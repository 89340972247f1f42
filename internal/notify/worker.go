package notify

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/you/tutor-marketplace/pkg/mq"
)

// Worker drains the notification queue and fans deliveries out to the
// Notifier. Failed handlers Nack to the dead-letter exchange.
type Worker struct {
	consumer *mq.Consumer
	notifier Notifier
	tag      string
}

func NewWorker(consumer *mq.Consumer, n Notifier, tag string) *Worker {
	return &Worker{consumer: consumer, notifier: n, tag: tag}
}

func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.consumer.Deliveries(ctx, w.tag)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.handle(d); err != nil {
				log.Printf("[notify] handle key=%s err=%v -> Nack", d.RoutingKey, err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *Worker) handle(d amqp.Delivery) error {
	switch d.RoutingKey {
	case RKAccountRegistered:
		ev, err := decode[AccountRegistered](d.Body)
		if err != nil {
			return err
		}
		// Stands in for the verification email.
		return w.notifier.Notify("Verify your account",
			fmt.Sprintf("Welcome %s! Verification token: %s", ev.Email, ev.VerificationToken))

	case RKBookingCreated:
		ev, err := decode[BookingCreated](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Booking requested",
			fmt.Sprintf("Booking %s (listing=%s) %s", ev.BookingID, ev.ListingID, humanTimeRange(ev.Start, ev.End)))

	case RKBookingAccepted:
		ev, err := decode[BookingSimple](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Booking accepted",
			fmt.Sprintf("Booking %s has been accepted by the tutor.", ev.BookingID))

	case RKBookingCancelled:
		ev, err := decode[BookingSimple](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Booking cancelled",
			fmt.Sprintf("Booking %s has been cancelled.", ev.BookingID))

	case RKBookingCompleted:
		ev, err := decode[BookingSimple](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Session completed",
			fmt.Sprintf("Booking %s is complete. The student can now leave a review.", ev.BookingID))

	default:
		log.Printf("[notify] skip unknown key=%s", d.RoutingKey)
	}
	return nil
}
