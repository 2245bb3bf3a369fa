package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/freitascorp/s3tui/pkg/delete"
	"github.com/freitascorp/s3tui/pkg/s3client"
)

// Every async result message carries the epoch it was issued under
// (spec.md §5 "Epochs and cancellation"); Update discards any message
// whose epoch no longer matches the model's current epoch.

// bootstrapMsg carries the CLI entrypoint's `<remote>`/`<remote> <bucket>`
// arguments (SPEC_FULL.md CLI entrypoint section) into the model on the
// first Update call, since Init can only return a Cmd, not a new Model.
type bootstrapMsg struct {
	remote string
	bucket string
}

func bootstrapCmd(remote, bucket string) tea.Cmd {
	return func() tea.Msg {
		return bootstrapMsg{remote: remote, bucket: bucket}
	}
}

// cmdID correlates an issued async command with its result message,
// generalizing the teacher's fleet.Executor req.ID correlation pattern
// (SPEC_FULL.md DOMAIN STACK, google/uuid) so the status bar can show which
// request is still outstanding.

type bucketsMsg struct {
	cmdID   string
	epoch   uint64
	remote  string
	buckets []string
	err     error
}

type headObjectMsg struct {
	cmdID string
	epoch uint64
	key   string
	meta  s3client.ObjectMetadata
	err   error
}

type deleteDoneMsg struct {
	cmdID  string
	epoch  uint64
	target delete.Target
	result delete.Result
	err    error
}

// tickMsg drives the periodic "has the index advanced" check (spec.md
// §4.8.4); bubbletea delivers one message per Update call, so this stands
// in for the frame loop the teacher's fleet_dashboard.go drives with its
// own tickCmd.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func listBucketsCmd(transport s3client.Transport, remote string, epoch uint64) (tea.Cmd, string) {
	id := uuid.New().String()
	return func() tea.Msg {
		names, err := transport.ListBuckets(context.Background())
		return bucketsMsg{cmdID: id, epoch: epoch, remote: remote, buckets: names, err: err}
	}, id
}

func headObjectCmd(transport s3client.Transport, bucket, key string, epoch uint64) (tea.Cmd, string) {
	id := uuid.New().String()
	return func() tea.Msg {
		meta, err := transport.HeadObject(context.Background(), bucket, key)
		return headObjectMsg{cmdID: id, epoch: epoch, key: key, meta: meta, err: err}
	}, id
}

func deleteCmd(transport s3client.Transport, bucket string, target delete.Target, keys []string, epoch uint64) (tea.Cmd, string) {
	id := uuid.New().String()
	return func() tea.Msg {
		result, err := delete.Execute(context.Background(), transport, bucket, keys, nil)
		return deleteDoneMsg{cmdID: id, epoch: epoch, target: target, result: result, err: err}
	}, id
}
