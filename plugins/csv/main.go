package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	exportrpc "unitrack/internal/modules/export/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *exportrpc.Empty) (*exportrpc.Metadata, error) {
	return &exportrpc.Metadata{
		Name:         "csv",
		Version:      "1.0.0",
		Capabilities: []string{"export"},
	}, nil
}

func (s *server) ListFormats(_ context.Context, _ *exportrpc.Empty) (*exportrpc.ListFormatsResponse, error) {
	return &exportrpc.ListFormatsResponse{Formats: []exportrpc.FormatDescriptor{
		{ID: "csv", Title: "CSV", Description: "Comma-separated values, one row per application", FileExt: "csv", TimeoutMS: 2000},
	}}, nil
}

type record struct {
	ID          string          `json:"id"`
	University  string          `json:"university"`
	Course      string          `json:"course"`
	Deadline    string          `json:"deadline"`
	Status      string          `json:"status"`
	UniAssist   bool            `json:"uniAssist"`
	VPDRequired bool            `json:"vpdRequired"`
	Documents   map[string]bool `json:"documents"`
	Notes       string          `json:"notes"`
}

func (s *server) Export(_ context.Context, in *exportrpc.ExportRequest) (*exportrpc.ExportResponse, error) {
	if in.FormatID != "csv" {
		return nil, fmt.Errorf("unknown format: %s", in.FormatID)
	}
	var records []record
	if strings.TrimSpace(in.RecordsJSON) != "" {
		if err := json.Unmarshal([]byte(in.RecordsJSON), &records); err != nil {
			return &exportrpc.ExportResponse{Stderr: fmt.Sprintf("parse records: %v", err), ExitCode: 1}, nil
		}
	}

	buf := &strings.Builder{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"university", "course", "deadline", "status", "uniAssist", "vpdRequired", "documentsReady", "documentsTotal", "notes"})
	for _, r := range records {
		ready := 0
		for _, done := range r.Documents {
			if done {
				ready++
			}
		}
		_ = w.Write([]string{
			r.University,
			r.Course,
			r.Deadline,
			r.Status,
			strconv.FormatBool(r.UniAssist),
			strconv.FormatBool(r.VPDRequired),
			strconv.Itoa(ready),
			strconv.Itoa(len(r.Documents)),
			r.Notes,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &exportrpc.ExportResponse{Stderr: fmt.Sprintf("write csv: %v", err), ExitCode: 1}, nil
	}
	return &exportrpc.ExportResponse{Payload: buf.String(), ExitCode: 0}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: exportrpc.HandshakeConfig,
		Plugins:         exportrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
