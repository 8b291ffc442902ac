package config

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"pageant/utils"

	"github.com/segmentio/kafka-go"
)

func auditTopic(eventId int) string {
	return fmt.Sprintf("tabulation-audit-%d", eventId)
}

func CreateAuditTopic(eventId int) error {
	broker := Env().KafkaBroker
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER environment variable not set")
	}

	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return err
	}
	defer utils.Closer(conn)()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer utils.Closer(controllerConn)()

	topicConfig := kafka.TopicConfig{
		Topic:             auditTopic(eventId),
		NumPartitions:     1,
		ReplicationFactor: 1,
		ConfigEntries: []kafka.ConfigEntry{
			{
				ConfigName:  "compression.type",
				ConfigValue: "zstd",
			},
			// 90 days retention, tabulation records are kept until well after the event
			{
				ConfigName:  "retention.ms",
				ConfigValue: "7776000000",
			},
		},
	}

	return controllerConn.CreateTopics(topicConfig)
}

// PublishAuditRecord appends a record to the event's audit topic.
// Fire-and-forget: failures are logged, never surfaced to the caller.
func PublishAuditRecord(eventId int, key string, payload []byte) {
	broker := Env().KafkaBroker
	if broker == "" {
		return
	}
	go func() {
		writer := &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        auditTopic(eventId),
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: 10 * time.Second,
		}
		defer utils.Closer(writer)()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(key),
			Value: payload,
		})
		if err != nil {
			log.Printf("audit publish failed for event %d: %v", eventId, err)
		}
	}()
}
