package config

import (
	"sol-ix-decoder/pkg/logger"
	"sol-ix-decoder/pkg/mq"
)

type LogConfig struct {
	Format   string `yaml:"format"`   // 日志格式，支持 "console" 或 "json"
	LogDir   string `yaml:"log_dir"`  // 日志目录（可为相对路径或绝对路径）
	Level    string `yaml:"level"`    // 日志级别：debug / info / warn / error
	Compress bool   `yaml:"compress"` // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// GeyserConfig 表示 yellowstone geyser 订阅相关配置
type GeyserConfig struct {
	Endpoint string `yaml:"endpoint"` // geyser gRPC 地址
	XToken   string `yaml:"x_token"`  // 认证用的 x-token

	ConnectTimeoutSec     int `yaml:"connect_timeout_sec"`      // 建连超时（秒）
	ReconnectIntervalSec  int `yaml:"reconnect_interval_sec"`   // 重连基础间隔（秒）
	StreamPingIntervalSec int `yaml:"stream_ping_interval_sec"` // stream 心跳间隔（秒）
	BlockRecvTimeoutSec   int `yaml:"block_recv_timeout_sec"`   // 多久没收到 block 触发重连（秒）
	SendTimeoutSec        int `yaml:"send_timeout_sec"`         // gRPC 发送超时（秒）

	InitialWindowSize        int `yaml:"initial_window_size"`         // HTTP/2 流级窗口
	InitialConnWindowSize    int `yaml:"initial_conn_window_size"`    // HTTP/2 连接级窗口
	MaxCallSendMsgSize       int `yaml:"max_call_send_msg_size"`      // 单次发送消息上限（字节）
	MaxCallRecvMsgSize       int `yaml:"max_call_recv_msg_size"`      // 单次接收消息上限（字节）
	KeepalivePingIntervalSec int `yaml:"keepalive_ping_interval_sec"` // 连接级 keepalive 间隔（秒）
	KeepalivePingTimeoutSec  int `yaml:"keepalive_ping_timeout_sec"`  // keepalive 应答超时（秒）
}

// KafkaProducerConfig 表示 Kafka 生产者相关配置
type KafkaProducerConfig struct {
	Brokers   string `yaml:"brokers"`    // Kafka broker 地址，多个用英文逗号分隔
	BatchSize int    `yaml:"batch_size"` // 批处理大小（单位字节）
	LingerMs  int    `yaml:"linger_ms"`  // 批处理最大延迟（毫秒）

	Topics struct {
		Instruction string `yaml:"instruction"` // 解码后指令事件的 Kafka topic
	} `yaml:"topics"`

	Partitions struct {
		Instruction int `yaml:"instruction"` // instruction topic 的分区数
	} `yaml:"partitions"`
}

func (c *KafkaProducerConfig) ToKafkaOption() mq.KafkaProducerOption {
	return mq.KafkaProducerOption{
		Brokers:   c.Brokers,
		BatchSize: c.BatchSize,
		LingerMs:  c.LingerMs,
		Topics: []struct {
			Topic      string
			Partitions int
		}{
			{Topic: c.Topics.Instruction, Partitions: c.Partitions.Instruction},
		},
	}
}

// RuntimeConfig 控制内置解码器的启用情况与单笔交易的指令规模上限
type RuntimeConfig struct {
	SystemProgram        bool `yaml:"system_program"`
	TokenProgram         bool `yaml:"token_program"`
	Token2022Program     bool `yaml:"token_2022_program"`
	ComputeBudgetProgram bool `yaml:"compute_budget_program"`
	MemoProgram          bool `yaml:"memo_program"`
	MaxInstructions      int  `yaml:"max_instructions"` // 非正值回落到默认上限
}

// TimeConfig 表示各种超时配置（单位：毫秒）
type TimeConfig struct {
	SlotDispatchTimeoutMs int `yaml:"slot_dispatch_timeout_ms"` // 每个 slot 的处理最大耗时
	EventSendTimeoutMs    int `yaml:"event_send_timeout_ms"`    // 单条消息发送到 Kafka 并等待 ack 的超时时间
}

// DecoderConfig 是主配置结构体，驱动解码服务
type DecoderConfig struct {
	LogConf           LogConfig           `yaml:"logger"`         // 日志配置
	GeyserConf        GeyserConfig        `yaml:"geyser"`         // geyser 订阅配置
	KafkaProducerConf KafkaProducerConfig `yaml:"kafka_producer"` // Kafka 生产者配置
	RuntimeConf       RuntimeConfig       `yaml:"runtime"`        // 解码器开关配置
	TimeConf          TimeConfig          `yaml:"time_conf"`      // 时间相关配置

	RedisAddr string `yaml:"redis_addr"` // Redis 地址
}
