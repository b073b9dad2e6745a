// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQConfig struct {
	amqpURL string
}

type Client struct {
	AMQPURL     string
	AMQPConn    *amqp.Connection
	AMQPChannel *amqp.Channel
}

const (
	// ActivityExchange carries every activity event the API emits. Topic
	// routing lets consumers subscribe to a single category or to all of
	// them with activity.#.
	ActivityExchange = "workspan.activity"

	ActivityRoutingPrefix = "activity."
)
