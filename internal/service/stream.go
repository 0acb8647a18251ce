package service

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"

	"sol-ix-decoder/internal/config"
	"sol-ix-decoder/pkg/logger"
)

// GeyserStreamManager 维护到 yellowstone geyser 的订阅流，
// 断流后自动重连，收到的 block 推入 blockChan。
type GeyserStreamManager struct {
	mu                    sync.Mutex
	conn                  *grpc.ClientConn
	client                pb.GeyserClient
	stream                pb.Geyser_SubscribeClient
	stopped               bool
	reconnectAttempts     int
	reconnectInterval     time.Duration
	xToken                string
	streamPingIntervalSec int
	blockChan             chan *pb.SubscribeUpdateBlock
	connCtx               context.Context
	connCancel            context.CancelFunc
	blockRecvTimeoutSec   int
	sendTimeoutSec        int
}

func NewGeyserStreamManager(c config.GeyserConfig, blockChan chan *pb.SubscribeUpdateBlock) (*GeyserStreamManager, error) {
	configTls := &tls.Config{
		InsecureSkipVerify: true,
	}

	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(c.ConnectTimeoutSec)*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(
		dialCtx,
		c.Endpoint,
		grpc.WithTransportCredentials(credentials.NewTLS(configTls)),
		grpc.WithInitialWindowSize(int32(c.InitialWindowSize)),
		grpc.WithInitialConnWindowSize(int32(c.InitialConnWindowSize)),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallSendMsgSize(c.MaxCallSendMsgSize),
			grpc.MaxCallRecvMsgSize(c.MaxCallRecvMsgSize),
		),
		grpc.WithBlock(),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                time.Duration(c.KeepalivePingIntervalSec) * time.Second,
			Timeout:             time.Duration(c.KeepalivePingTimeoutSec) * time.Second,
			PermitWithoutStream: true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %v", err)
	}

	return &GeyserStreamManager{
		conn:                  conn,
		client:                pb.NewGeyserClient(conn),
		reconnectInterval:     time.Duration(c.ReconnectIntervalSec) * time.Second,
		xToken:                c.XToken,
		streamPingIntervalSec: c.StreamPingIntervalSec,
		blockChan:             blockChan,
		blockRecvTimeoutSec:   c.BlockRecvTimeoutSec,
		sendTimeoutSec:        c.SendTimeoutSec,
	}, nil
}

func (m *GeyserStreamManager) Start() {
	m.mustConnect()
}

func (m *GeyserStreamManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopped = true
	if m.connCancel != nil {
		m.connCancel()
		m.connCancel = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
	}
}

// mustConnect 内部循环直到连接成功或被 Stop
func (m *GeyserStreamManager) mustConnect() {
	for {
		m.mu.Lock()
		if m.stopped {
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()

		if m.reconnectAttempts > 0 {
			if m.reconnectAttempts > 3 {
				time.Sleep(m.reconnectInterval * 2)
			} else {
				time.Sleep(m.reconnectInterval)
			}
		}
		logger.Infof("geyser connecting... attempt %d", m.reconnectAttempts+1)
		m.reconnectAttempts++
		if err := m.connect(); err == nil {
			return
		} else {
			logger.Warnf("geyser connect failed: %v, will retry", err)
		}
	}
}

// buildSubscribeRequest 订阅全部 block（含交易），解码端自行按 program 过滤
func buildSubscribeRequest() *pb.SubscribeRequest {
	blocks := make(map[string]*pb.SubscribeRequestFilterBlocks)
	blocks["blocks"] = &pb.SubscribeRequestFilterBlocks{
		IncludeTransactions: boolPtr(true),
		IncludeAccounts:     boolPtr(false),
		IncludeEntries:      boolPtr(false),
	}
	commitment := pb.CommitmentLevel_CONFIRMED
	return &pb.SubscribeRequest{
		Blocks:     blocks,
		Commitment: &commitment,
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// connect 只尝试一次连接
func (m *GeyserStreamManager) connect() error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return errors.New("manager is stopped")
	}

	// 先关闭旧的 context，优雅退出旧 goroutine
	if m.connCancel != nil {
		m.connCancel()
	}
	m.connCtx, m.connCancel = context.WithCancel(context.Background())
	connCtx := m.connCtx
	m.mu.Unlock()

	metaCtx := metadata.NewOutgoingContext(
		connCtx,
		metadata.New(map[string]string{"x-token": m.xToken}),
	)
	stream, err := m.client.Subscribe(metaCtx)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	req := buildSubscribeRequest()
	if err := sendWithTimeout(connCtx, stream.Send, req, time.Duration(m.sendTimeoutSec)*time.Second); err != nil {
		return fmt.Errorf("send subscribe request: %w", err)
	}

	m.mu.Lock()
	m.stream = stream
	m.reconnectAttempts = 0
	m.mu.Unlock()
	logger.Infof("geyser connection established")

	go m.pingLoop(connCtx)
	go m.blockRecvLoop(connCtx, stream)

	return nil
}

func (m *GeyserStreamManager) blockRecvLoop(ctx context.Context, stream pb.Geyser_SubscribeClient) {
	last := time.Now()
	blockTimeout := time.Duration(m.blockRecvTimeoutSec) * time.Second
	for {
		select {
		case <-ctx.Done():
			return
		default:
			update, err := stream.Recv()
			now := time.Now()
			if err != nil {
				if errors.Is(err, io.EOF) {
					logger.Warnf("geyser stream closed by server (EOF), will reconnect")
					m.reconnect()
					return
				}
				logger.Warnf("geyser stream error: %v", err)
				if m.reconnectIfBlockTimeout(last, blockTimeout) {
					return
				}
				time.Sleep(100 * time.Millisecond)
				continue
			}

			if block, ok := update.GetUpdateOneof().(*pb.SubscribeUpdate_Block); ok {
				select {
				case m.blockChan <- block.Block:
				default:
					logger.Warnf("block chan is full, discard block at slot %d", block.Block.Slot)
				}
				last = now
			}
		}

		if m.reconnectIfBlockTimeout(last, blockTimeout) {
			return
		}
	}
}

// sendWithTimeout 带超时的 Send
func sendWithTimeout[T any](ctx context.Context, sendFunc func(T) error, req T, timeout time.Duration) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- sendFunc(req)
	}()

	select {
	case <-timeoutCtx.Done():
		return timeoutCtx.Err()
	case err := <-done:
		return err
	}
}

// pingLoop 周期性发 stream 级心跳，失败只记日志不触发重连
func (m *GeyserStreamManager) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(m.streamPingIntervalSec) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingReq := &pb.SubscribeRequest{
				Ping: &pb.SubscribeRequestPing{Id: 1},
			}
			if err := sendWithTimeout(ctx, m.stream.Send, pingReq, time.Duration(m.sendTimeoutSec)*time.Second); err != nil {
				logger.Warnf("geyser ping failed: %v", err)
			}
		}
	}
}

func (m *GeyserStreamManager) reconnectIfBlockTimeout(last time.Time, timeout time.Duration) bool {
	if time.Since(last) > timeout {
		logger.Warnf("no block received for %v, trigger reconnect", timeout)
		m.reconnect()
		return true
	}
	return false
}

func (m *GeyserStreamManager) reconnect() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	m.mustConnect()
}
