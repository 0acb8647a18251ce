package mq

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"sol-ix-decoder/pkg/utils"
)

// 单批发送的并发上限，防止大区块一次性建起上千个 delivery 通道
const maxSendConcurrency = 32

// KafkaJob 表示一条需要发送的 Kafka 消息
type KafkaJob struct {
	Topic     string
	Partition int32
	Value     []byte
}

// KafkaSendResult 表示每条消息的发送结果
type KafkaSendResult struct {
	Job *KafkaJob
	Err error
}

// SendKafkaJobs 并发发送一批消息并逐条等待 ack，外部 context 控制整批取消。
// 失败不在这里重试，由调用方决定是否整批重做（slot 级幂等保证重做安全）。
func SendKafkaJobs(
	ctx context.Context,
	producer *kafka.Producer,
	jobs []*KafkaJob,
	perMessageTimeout time.Duration,
) (ok []*KafkaJob, failed []KafkaSendResult) {
	results := utils.ParallelMap(jobs, maxSendConcurrency, func(job *KafkaJob) KafkaSendResult {
		return KafkaSendResult{Job: job, Err: sendOne(ctx, producer, job, perMessageTimeout)}
	})

	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res)
		} else {
			ok = append(ok, res.Job)
		}
	}
	return ok, failed
}

// sendOne 发送单条消息并等待 delivery 回执
func sendOne(ctx context.Context, producer *kafka.Producer, job *KafkaJob, timeout time.Duration) error {
	deliveryChan := make(chan kafka.Event, 1)
	err := producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &job.Topic,
			Partition: job.Partition,
		},
		Value: job.Value,
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("produce error: %w", err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case e, open := <-deliveryChan:
		if !open {
			return fmt.Errorf("delivery channel closed unexpectedly")
		}
		msg, isMsg := e.(*kafka.Message)
		if !isMsg {
			return fmt.Errorf("unexpected delivery event type: %T", e)
		}
		return msg.TopicPartition.Error
	case <-timer.C:
		go drainDelivery(deliveryChan)
		return fmt.Errorf("delivery timeout (>%v)", timeout)
	case <-ctx.Done():
		go drainDelivery(deliveryChan)
		return fmt.Errorf("send cancelled: %w", ctx.Err())
	}
}

// drainDelivery 在超时/取消后继续消费 delivery 通道，避免 Kafka 回调阻塞
func drainDelivery(ch <-chan kafka.Event) {
	defer func() {
		_ = recover()
	}()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
	}
}
