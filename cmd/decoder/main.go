package main

import (
	"flag"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	zerosvc "github.com/zeromicro/go-zero/core/service"

	"sol-ix-decoder/internal/config"
	"sol-ix-decoder/internal/service"
	"sol-ix-decoder/internal/svc"
	"sol-ix-decoder/pkg/logger"
)

var configFile = flag.String("f", "etc/decoder.yaml", "the config file")

func main() {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
		}
	}()

	flag.Parse()

	var c config.DecoderConfig
	conf.MustLoad(*configFile, &c)

	if err := logger.InitLogger(c.LogConf.ToLogOption()); err != nil {
		panic(err)
	}
	defer logger.Sync()

	serviceContext, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}
	defer serviceContext.Close()

	blockChan := make(chan *pb.SubscribeUpdateBlock, 200)
	defer close(blockChan)

	streamService, err := service.NewGeyserStreamManager(c.GeyserConf, blockChan)
	if err != nil {
		panic(err)
	}

	sg := zerosvc.NewServiceGroup()
	sg.Add(service.NewBlockProcessor(serviceContext, blockChan))
	sg.Add(streamService)

	logx.Infof("Starting decoder service")
	sg.Start()

	// 等待退出信号
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logx.Info("Shutting down services...")
	sg.Stop()
}
