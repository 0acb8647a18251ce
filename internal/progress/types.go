package progress

// SlotStatus 表示 slot 的解码处理状态
type SlotStatus int

const (
	SlotUnknown   SlotStatus = 0 // Redis 不存在
	SlotProcessed SlotStatus = 1 // 已解码并发布成功
	SlotInvalid   SlotStatus = 2 // 明确结构错误、跳过
	SlotPending   SlotStatus = 3 // 标记中，暂未完成（幂等控制）
)
