package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpost/vaultpost/internal/model"
)

func TestImportRequestValidate(t *testing.T) {
	tests := map[string]struct {
		req    model.ImportRequest
		expErr bool
	}{
		"Valid bin files should pass.": {
			req: model.ImportRequest{Paths: []string{"a.bin", "b.bin"}, Wallet: "Default"},
		},
		"Valid stack file should pass.": {
			req: model.ImportRequest{Paths: []string{"coins.stack"}, Wallet: "Default"},
		},
		"Valid png file should pass.": {
			req: model.ImportRequest{Paths: []string{"coin.png"}, Wallet: "Default"},
		},
		"Uppercase extension should pass.": {
			req: model.ImportRequest{Paths: []string{"a.BIN"}, Wallet: "Default"},
		},
		"Empty path list should fail.": {
			req:    model.ImportRequest{Wallet: "Default"},
			expErr: true,
		},
		"Blank path should fail.": {
			req:    model.ImportRequest{Paths: []string{"  "}, Wallet: "Default"},
			expErr: true,
		},
		"Unsupported extension should fail.": {
			req:    model.ImportRequest{Paths: []string{"a.txt"}, Wallet: "Default"},
			expErr: true,
		},
		"One bad file among good ones should fail.": {
			req:    model.ImportRequest{Paths: []string{"a.bin", "b.exe"}, Wallet: "Default"},
			expErr: true,
		},
		"Missing wallet should fail.": {
			req:    model.ImportRequest{Paths: []string{"a.bin"}},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestExportRequestValidate(t *testing.T) {
	tests := map[string]struct {
		req    model.ExportRequest
		expErr bool
	}{
		"Positive amount should pass.": {
			req: model.ExportRequest{Amount: 250, Wallet: "Default"},
		},
		"Fractional amount should pass.": {
			req: model.ExportRequest{Amount: 0.5, Wallet: "Default"},
		},
		"Zero amount should fail.": {
			req:    model.ExportRequest{Amount: 0, Wallet: "Default"},
			expErr: true,
		},
		"Negative amount should fail.": {
			req:    model.ExportRequest{Amount: -10, Wallet: "Default"},
			expErr: true,
		},
		"Missing wallet should fail.": {
			req:    model.ExportRequest{Amount: 10},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLockerUploadRequestValidate(t *testing.T) {
	tests := map[string]struct {
		req    model.LockerUploadRequest
		expErr bool
	}{
		"Valid upload should pass.": {
			req: model.LockerUploadRequest{Amount: 5, Code: "ABC-2345", Wallet: "Default"},
		},
		"Lowercase code should pass after normalization.": {
			req: model.LockerUploadRequest{Amount: 5, Code: "abc-2345", Wallet: "Default"},
		},
		"Zero amount should fail.": {
			req:    model.LockerUploadRequest{Amount: 0, Code: "ABC-2345", Wallet: "Default"},
			expErr: true,
		},
		"Bad code should fail.": {
			req:    model.LockerUploadRequest{Amount: 5, Code: "nope", Wallet: "Default"},
			expErr: true,
		},
		"Missing wallet should fail.": {
			req:    model.LockerUploadRequest{Amount: 5, Code: "ABC-2345"},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLockerDownloadRequestValidate(t *testing.T) {
	tests := map[string]struct {
		req    model.LockerDownloadRequest
		expErr bool
	}{
		"Valid download should pass.": {
			req: model.LockerDownloadRequest{Code: "QRS-7899", Wallet: "Default"},
		},
		"Bad code should fail.": {
			req:    model.LockerDownloadRequest{Code: "QRS_7899", Wallet: "Default"},
			expErr: true,
		},
		"Missing wallet should fail.": {
			req:    model.LockerDownloadRequest{Code: "QRS-7899"},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSendMailRequestValidate(t *testing.T) {
	tests := map[string]struct {
		req    model.SendMailRequest
		expErr bool
	}{
		"Valid mail should pass.": {
			req: model.SendMailRequest{To: "alice", Subject: "hi", Body: "hello"},
		},
		"Empty body should pass.": {
			req: model.SendMailRequest{To: "alice", Subject: "hi"},
		},
		"Missing recipient should fail.": {
			req:    model.SendMailRequest{Subject: "hi"},
			expErr: true,
		},
		"Missing subject should fail.": {
			req:    model.SendMailRequest{To: "alice"},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestImportRequestNormalized(t *testing.T) {
	req := model.ImportRequest{
		Paths:  []string{`C:\coins\a.bin`, "already/fine.bin"},
		Wallet: "wallets/Default",
	}

	got := req.Normalized()

	// File paths use forward slashes, wallet paths use backslashes.
	assert.Equal(t, []string{"C:/coins/a.bin", "already/fine.bin"}, got.Paths)
	assert.Equal(t, `wallets\Default`, got.Wallet)
}
