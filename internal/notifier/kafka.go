package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/util"
)

// UserEventPublisher отправляет события о пользователях в топик user_events,
// их потребляет user-service для синхронизации профилей
type UserEventPublisher struct {
	writer *kafka.Writer
}

type userRegisteredEvent struct {
	Event     string    `json:"event"`
	UserUUID  string    `json:"user_uuid"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserEventPublisher(cfg *config.KafkaConfig) *UserEventPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}

	return &UserEventPublisher{writer: writer}
}

func (p *UserEventPublisher) PublishUserRegistered(ctx context.Context, user *model.User) error {
	event := userRegisteredEvent{
		Event:     "user.registered",
		UserUUID:  user.UUID,
		Username:  user.Username,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return util.LogError("ошибка сериализации события user.registered", err)
	}

	msg := kafka.Message{
		Key:   []byte(user.UUID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return util.LogError("ошибка отправки события в Kafka", err)
	}

	return nil
}

func (p *UserEventPublisher) Close() error {
	return p.writer.Close()
}
