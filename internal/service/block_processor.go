package service

import (
	"context"
	"errors"
	stdruntime "runtime"
	"time"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/zeromicro/go-zero/core/logx"

	"sol-ix-decoder/internal/mq"
	"sol-ix-decoder/internal/progress"
	"sol-ix-decoder/internal/svc"
	pkgmq "sol-ix-decoder/pkg/mq"
	"sol-ix-decoder/pkg/utils"
)

// BlockProcessor 消费 blockChan，对每笔交易跑解码分派并把结果发布到 Kafka
type BlockProcessor struct {
	sc        *svc.ServiceContext
	blockChan chan *pb.SubscribeUpdateBlock
	ctx       context.Context
	cancel    func(err error)
	logx.Logger
}

// decodedTxResult 是单笔交易的解码产物，Job 为 nil 表示无事可发
type decodedTxResult struct {
	txIndex int
	job     *pkgmq.KafkaJob
}

func NewBlockProcessor(sc *svc.ServiceContext, blockChan chan *pb.SubscribeUpdateBlock) *BlockProcessor {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &BlockProcessor{
		sc:        sc,
		blockChan: blockChan,
		Logger:    logx.WithContext(ctx).WithFields(logx.Field("service", "block_processor")),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (p *BlockProcessor) Start() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case block := <-p.blockChan:
			p.procBlock(block)
			if len(p.blockChan) > 10 {
				p.Debugf("block chan len: %v", len(p.blockChan))
			}
		}
	}
}

func (p *BlockProcessor) Stop() {
	p.cancel(errors.New("service stop"))
}

func (p *BlockProcessor) procBlock(block *pb.SubscribeUpdateBlock) {
	startTime := time.Now()
	defer func() {
		p.Infof("区块处理总耗时: %v, slot: %d", time.Since(startTime), block.Slot)
	}()

	dispatchTimeout := time.Duration(p.sc.Config.TimeConf.SlotDispatchTimeoutMs) * time.Millisecond
	if dispatchTimeout <= 0 {
		dispatchTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(p.ctx, dispatchTimeout)
	defer cancel()

	// 1. 幂等控制：同一 slot 可能因重连被重复推送
	status, err := p.sc.Progress.GetSlotStatus(ctx, block.Slot)
	if err != nil {
		p.Errorf("查询 slot 状态失败（继续处理）: slot=%d, err=%v", block.Slot, err)
	} else if status == progress.SlotProcessed {
		p.Infof("slot 已处理，跳过: %d", block.Slot)
		return
	}
	if err := p.sc.Progress.MarkSlotPending(ctx, block.Slot); err != nil {
		p.Errorf("标记 slot pending 失败（继续处理）: slot=%d, err=%v", block.Slot, err)
	}

	// 2. 过滤 vote 交易后并发解码
	validTxs := make([]*pb.SubscribeUpdateTransactionInfo, 0, len(block.Transactions))
	for _, tx := range block.Transactions {
		if tx != nil && !tx.IsVote {
			validTxs = append(validTxs, tx)
		}
	}

	decodeStart := time.Now()
	results := utils.ParallelMap(validTxs, stdruntime.NumCPU()+2,
		func(tx *pb.SubscribeUpdateTransactionInfo) decodedTxResult {
			return p.decodeTx(block.Slot, tx)
		})
	p.Infof("指令解码耗时: %v", time.Since(decodeStart))

	jobs := make([]*pkgmq.KafkaJob, 0, len(results))
	for _, result := range results {
		if result.job != nil {
			jobs = append(jobs, result.job)
		}
	}
	p.Infof("总 tx 数量: %v, 非 vote tx 数量: %v, 有解码结果 tx 数量: %v",
		len(block.Transactions), len(validTxs), len(jobs))

	// 3. 发布解码结果并更新进度
	if len(jobs) > 0 {
		sendTimeout := time.Duration(p.sc.Config.TimeConf.EventSendTimeoutMs) * time.Millisecond
		if sendTimeout <= 0 {
			sendTimeout = 3 * time.Second
		}
		_, failed := pkgmq.SendKafkaJobs(ctx, p.sc.Producer, jobs, sendTimeout)
		if len(failed) > 0 {
			p.Errorf("slot %d: %d/%d 条消息发送失败，不标记 processed", block.Slot, len(failed), len(jobs))
			return
		}
	}

	if err := p.sc.Progress.MarkSlotProcessed(ctx, block.Slot); err != nil {
		p.Errorf("标记 slot processed 失败: slot=%d, err=%v", block.Slot, err)
	}
}

// decodeTx 解码单笔交易并组装发布任务。解码失败与无认领指令都不是错误，
// 只是该交易无事可发。
func (p *BlockProcessor) decodeTx(slot uint64, tx *pb.SubscribeUpdateTransactionInfo) decodedTxResult {
	res := decodedTxResult{txIndex: int(tx.Index)}

	decoded, err := p.sc.Runtime.DecodeTransaction(tx)
	if err != nil {
		p.Debugf("交易解码失败: slot=%d, index=%d, err=%v", slot, tx.Index, err)
		return res
	}
	if len(decoded) == 0 {
		return res
	}

	cfg := &p.sc.Config.KafkaProducerConf
	job, err := mq.BuildDecodedTxJob(cfg.Topics.Instruction, cfg.Partitions.Instruction, slot, tx.Signature, decoded)
	if err != nil {
		p.Errorf("组装解码结果消息失败: slot=%d, index=%d, err=%v", slot, tx.Index, err)
		return res
	}
	res.job = job
	return res
}
