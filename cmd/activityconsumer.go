// SPDX-License-Identifier: GPL-3.0-only

// Activity consumer: drains the activity exchange into the activity_logs
// table. Handlers publish events after their transaction commits; this
// worker is the only writer of the persisted trail.
//
// go run ./cmd/activityconsumer.go
package main

import (
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"workspan-server/commons"
	"workspan-server/db"
	"workspan-server/models"
	"workspan-server/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm/clause"
)

func handleDelivery(msg amqp.Delivery) {
	var event models.ActivityEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		commons.Logger.Errorf("Dropping malformed activity event %s: %v", msg.MessageId, err)
		// Malformed payloads never become valid, do not requeue.
		if err := msg.Nack(false, false); err != nil {
			commons.Logger.Errorf("Nack failed: %v", err)
		}
		return
	}

	record, err := event.Record()
	if err != nil {
		commons.Logger.Errorf("Dropping activity event %s with bad EID: %v", event.EID, err)
		if err := msg.Nack(false, false); err != nil {
			commons.Logger.Errorf("Nack failed: %v", err)
		}
		return
	}

	// Redeliveries are expected after a crash between insert and ack; the
	// unique EID index plus DoNothing makes the insert idempotent.
	if err := db.Conn.Clauses(clause.OnConflict{DoNothing: true}).Create(record).Error; err != nil {
		commons.Logger.Errorf("Failed to persist activity event %s: %v", event.EID, err)
		if err := msg.Nack(false, true); err != nil {
			commons.Logger.Errorf("Nack failed: %v", err)
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		commons.Logger.Errorf("Ack failed for activity event %s: %v", event.EID, err)
		return
	}
	commons.Logger.Debugf("Recorded activity event %s (%s)", event.EID, event.Action)
}

func main() {
	queueName := flag.String("queue", "workspan_activity_logs", "Durable queue name")
	bindingKey := flag.String("binding-key", "activity.#", "Binding key on the activity exchange")
	flag.Parse()

	commons.LoadEnvFile()
	commons.InitLogger()
	db.InitDB()

	client, err := rabbitmq.NewClient(rabbitmq.RabbitMQConfig{})
	if err != nil {
		commons.Logger.Fatalf("RabbitMQ client init failed: %v", err)
	}
	defer client.Close()

	// One unacked message at a time keeps redelivery windows small.
	if err := client.AMQPChannel.Qos(1, 0, false); err != nil {
		commons.Logger.Fatalf("QoS failed: %v", err)
	}

	deliveries, err := client.ConsumeActivityEvents(*queueName, *bindingKey)
	if err != nil {
		commons.Logger.Fatalf("Consumer start failed: %v", err)
	}

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case msg, ok := <-deliveries:
				if !ok {
					commons.Logger.Error("Delivery channel closed")
					return
				}
				handleDelivery(msg)
			case <-stop:
				return
			}
		}
	}()

	commons.Logger.Infof("Activity consumer running on queue %s. Press Ctrl+C to exit.", *queueName)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	commons.Logger.Info("Stopping activity consumer")
	close(stop)
}
