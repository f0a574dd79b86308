// Package tracing 提供基于OpenTelemetry的分布式追踪初始化
//
// 核心概念：
// 1. Trace（追踪）：一个完整的请求链路，由多个Span组成
// 2. Span（跨度）：一个操作单元（如"下单"、"写库"），记录起止时间与状态
// 3. SpanContext：TraceID/SpanID等元数据，跨进程传播
//
// 使用方式：
//
//	shutdown, err := tracing.Init("bookshop", "http://localhost:4318")
//	if err != nil { ... }
//	defer shutdown(context.Background())
//
// HTTP层通过otelgin中间件自动为每个请求创建Span；
// 业务代码用tracing.Tracer()手动创建子Span（如订单落库）。
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Init 初始化全局TracerProvider
// 参数：
//   - serviceName: 服务名（Jaeger UI中的service标识）
//   - endpoint: OTLP HTTP Collector地址（如http://localhost:4318）
//
// 返回shutdown函数，进程退出前调用以刷出未导出的Span。
func Init(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP导出器失败: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("构建Resource失败: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	// W3C TraceContext + Baggage传播（跨服务传递TraceID）
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// Tracer 返回业务代码使用的Tracer
func Tracer() trace.Tracer {
	return otel.Tracer("bookshop")
}
