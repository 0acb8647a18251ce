package svc

import (
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/redis/go-redis/v9"

	"sol-ix-decoder/internal/config"
	"sol-ix-decoder/internal/progress"
	"sol-ix-decoder/internal/runtime"
	"sol-ix-decoder/pkg/logger"
	"sol-ix-decoder/pkg/mq"
)

// ServiceContext 包含解码服务的共享资源
type ServiceContext struct {
	Config   config.DecoderConfig
	Runtime  *runtime.Runtime
	Producer *kafka.Producer
	Progress *progress.RedisProgressStore
}

// NewServiceContext 创建解码服务上下文
func NewServiceContext(c config.DecoderConfig) (*ServiceContext, error) {
	// 1. 解码器注册表：注册顺序固定，配置只控制开关
	rt := runtime.FromConfig(c.RuntimeConf)

	// 2. Kafka 生产者
	producer, err := mq.NewKafkaProducer(c.KafkaProducerConf.ToKafkaOption())
	if err != nil {
		logger.Errorf("Kafka producer 初始化失败: %v", err)
		return nil, err
	}

	// 3. Redis 客户端（slot 进度幂等控制）
	rdb := redis.NewClient(&redis.Options{
		Addr: c.RedisAddr,
	})

	ctx := &ServiceContext{
		Config:   c,
		Runtime:  rt,
		Producer: producer,
		Progress: progress.NewRedisProgressStore(rdb),
	}

	logger.Infof("解码服务上下文初始化完成, 已启用解码器: %d 个", len(rt.Decoders()))
	return ctx, nil
}

// Close 关闭服务上下文中的资源
func (ctx *ServiceContext) Close() {
	if ctx.Producer != nil {
		ctx.Producer.Close()
	}
}
