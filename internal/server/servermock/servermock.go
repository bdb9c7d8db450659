// Package servermock has mocks for the server client interfaces.
package servermock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaultpost/vaultpost/internal/model"
	"github.com/vaultpost/vaultpost/internal/server"
)

// MockClient is a testify mock of server.Client.
type MockClient struct {
	mock.Mock
}

var _ server.Client = (*MockClient)(nil)

func (m *MockClient) StartImport(ctx context.Context, req model.ImportRequest) (*server.StartResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*server.StartResult)
	return res, args.Error(1)
}

func (m *MockClient) StartExport(ctx context.Context, req model.ExportRequest) (*server.StartResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*server.StartResult)
	return res, args.Error(1)
}

func (m *MockClient) StartLockerUpload(ctx context.Context, req model.LockerUploadRequest) (*server.StartResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*server.StartResult)
	return res, args.Error(1)
}

func (m *MockClient) StartLockerDownload(ctx context.Context, req model.LockerDownloadRequest) (*server.StartResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*server.StartResult)
	return res, args.Error(1)
}

func (m *MockClient) StartSendMail(ctx context.Context, req model.SendMailRequest) (*server.StartResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*server.StartResult)
	return res, args.Error(1)
}

func (m *MockClient) TaskStatus(ctx context.Context, kind model.TaskKind, id string) (*model.Task, error) {
	args := m.Called(ctx, kind, id)
	res, _ := args.Get(0).(*model.Task)
	return res, args.Error(1)
}

func (m *MockClient) Health(ctx context.Context) (*server.HealthStatus, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*server.HealthStatus)
	return res, args.Error(1)
}

func (m *MockClient) MailPing(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClient) WalletBalance(ctx context.Context, wallet string) (float64, error) {
	args := m.Called(ctx, wallet)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockClient) MailCount(ctx context.Context) (*server.MailCounts, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*server.MailCounts)
	return res, args.Error(1)
}
