package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	exportrpc "unitrack/internal/modules/export/adapter/out/rpc"
	"unitrack/internal/modules/export/domain"
	exportout "unitrack/internal/modules/export/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost launches an exporter binary per call and tears it down again.
// Exports are rare enough that keeping processes warm is not worth it.
type GRPCHost struct{}

func NewGRPCHost() exportout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) ListFormats(ctx context.Context, manifest domain.Manifest) ([]domain.FormatDescriptor, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	response, err := client.ListFormats(callCtx)
	if err != nil {
		return nil, fmt.Errorf("list formats: %w", err)
	}
	out := make([]domain.FormatDescriptor, 0, len(response.Formats))
	for _, format := range response.Formats {
		out = append(out, domain.FormatDescriptor{
			ID:          format.ID,
			Title:       format.Title,
			Description: format.Description,
			FileExt:     format.FileExt,
			TimeoutMS:   int(format.TimeoutMS),
		})
	}
	return out, nil
}

func (h *GRPCHost) Export(ctx context.Context, manifest domain.Manifest, input domain.ExportRequest) (domain.ExportResult, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.ExportResult{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Export(callCtx, &exportrpc.ExportRequest{
		FormatID:    input.FormatID,
		RecordsJSON: input.RecordsJSON,
		Context: exportrpc.ExportContext{
			DataDir: input.Context.DataDir,
			Email:   input.Context.Email,
			Cwd:     input.Context.Cwd,
			Env:     input.Context.Env,
		},
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.ExportResult{}, fmt.Errorf("%w: format %s", domain.ErrPluginTimeout, input.FormatID)
		}
		return domain.ExportResult{}, fmt.Errorf("run export: %w", err)
	}
	return domain.ExportResult{
		Payload:  response.Payload,
		Stderr:   response.Stderr,
		ExitCode: int(response.ExitCode),
	}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (exportrpc.ExporterClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  exportrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          exportrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start exporter client: %w", err)
	}
	raw, err := rpcClient.Dispense(exportrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense exporter: %w", err)
	}
	typed, ok := raw.(exportrpc.ExporterClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("exporter rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
