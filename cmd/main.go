package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-analyzer-go/internal/api/handler"
	"resume-analyzer-go/internal/api/router"
	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/job"
	appCoreLogger "resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/parser"
	"resume-analyzer-go/internal/scorer"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"
)

// @title AI Resume Analyzer API
// @version 1.0
// @description 简历解析、ATS评分与职位匹配服务
// @BasePath /api/v1
func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	// hertz的hlog也走同一个zerolog输出
	glog.SetLogger(hertzadapter.From(appCoreLogger.Logger))
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 组件日志：debug级别时输出到stderr，否则丢弃
	componentLogger := func(prefix string) *log.Logger {
		if cfg.Logger.Level == "debug" {
			return log.New(os.Stderr, prefix, log.LstdFlags)
		}
		return log.New(io.Discard, "", 0)
	}

	// NER能力：未配置服务地址时解析器降级为空实体结果
	var parserOptions []parser.ResumeParserOption
	if cfg.NER.ServerURL != "" {
		nerClient := parser.NewSpacyNERClient(
			cfg.NER.ServerURL,
			parser.WithNERTimeout(cfg.NERTimeout()),
			parser.WithNERLogger(componentLogger("[NER] ")),
		)
		parserOptions = append(parserOptions, parser.WithEntityRecognizer(nerClient))
		glog.Info("NER客户端初始化成功")
	} else {
		glog.Warn("未配置NER服务地址，实体提取将返回空结果")
	}

	resumeParser, err := parser.NewResumeParser(ctx, parserOptions...)
	if err != nil {
		glog.Fatalf("初始化简历解析器失败: %v", err)
	}
	glog.Info("简历解析器初始化成功")

	atsScorer := scorer.NewATSScorer()

	// 职位搜索与匹配是可选能力，凭证缺失时对应接口返回503
	var jobFetcher *job.Fetcher
	var jobMatcher *job.Matcher
	if cfg.Adzuna.AppID != "" && cfg.Adzuna.AppKey != "" {
		jobFetcher, err = job.NewFetcher(cfg.Adzuna,
			job.WithFetcherTimeout(cfg.AdzunaTimeout()),
			job.WithFetcherLogger(componentLogger("[JobFetcher] ")),
		)
		if err != nil {
			glog.Fatalf("初始化职位搜索客户端失败: %v", err)
		}
		glog.Info("职位搜索客户端初始化成功")
	} else {
		glog.Warn("未配置Adzuna凭证，职位匹配接口不可用")
	}
	if cfg.Embedding.APIKey != "" {
		embedder, err := parser.NewAliyunEmbedder(cfg.Embedding.APIKey, cfg.Embedding)
		if err != nil {
			glog.Fatalf("初始化Embedder失败: %v", err)
		}
		jobMatcher, err = job.NewMatcher(embedder, job.WithMatcherLogger(componentLogger("[JobMatcher] ")))
		if err != nil {
			glog.Fatalf("初始化职位匹配器失败: %v", err)
		}
		glog.Info("职位匹配器初始化成功")
	} else {
		glog.Warn("未配置Embedding API密钥，职位匹配接口不可用")
	}

	resumeHandler := handler.NewResumeHandler(cfg, resumeParser, atsScorer)
	jobMatchHandler := handler.NewJobMatchHandler(cfg, resumeParser, atsScorer, jobFetcher, jobMatcher)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, resumeHandler, jobMatchHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}
