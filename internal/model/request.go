package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AllowedImportExtensions are the coin file extensions the server accepts.
var AllowedImportExtensions = map[string]bool{
	".bin":   true,
	".stack": true,
	".png":   true,
}

// ImportRequest asks the server to import and authenticate coin files into
// a wallet.
type ImportRequest struct {
	// Paths are the coin files to import, on the file-path axis.
	Paths []string
	// Wallet is the destination wallet location, on the wallet-path axis.
	Wallet string
}

func (r *ImportRequest) Validate() error {
	if len(r.Paths) == 0 {
		return fmt.Errorf("at least one file is required: %w", ErrNotValid)
	}
	for _, p := range r.Paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("file path cannot be empty: %w", ErrNotValid)
		}
		ext := strings.ToLower(filepath.Ext(p))
		if !AllowedImportExtensions[ext] {
			return fmt.Errorf("file %q has unsupported extension %q: %w", p, ext, ErrNotValid)
		}
	}
	if strings.TrimSpace(r.Wallet) == "" {
		return fmt.Errorf("wallet is required: %w", ErrNotValid)
	}
	return nil
}

// Normalized returns a copy with every parameter converted to its axis.
func (r ImportRequest) Normalized() ImportRequest {
	paths := make([]string, 0, len(r.Paths))
	for _, p := range r.Paths {
		paths = append(paths, NormalizeFilePath(p))
	}
	return ImportRequest{Paths: paths, Wallet: NormalizeWalletPath(r.Wallet)}
}

// ExportRequest asks the server to export an amount of coins from a wallet.
// Amounts are whole-unit decimal values.
type ExportRequest struct {
	Amount float64
	// Wallet is the source wallet location, on the wallet-path axis.
	Wallet string
	// Tag is an optional receipt tag recorded with the export.
	Tag string
}

func (r *ExportRequest) Validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be a positive number: %w", ErrNotValid)
	}
	if strings.TrimSpace(r.Wallet) == "" {
		return fmt.Errorf("wallet is required: %w", ErrNotValid)
	}
	return nil
}

// Normalized returns a copy with every parameter converted to its axis.
func (r ExportRequest) Normalized() ExportRequest {
	r.Wallet = NormalizeWalletPath(r.Wallet)
	return r
}

// LockerUploadRequest asks the server to place an amount of coins into a
// locker identified by a human-typed code.
type LockerUploadRequest struct {
	Amount float64
	Code   string
	// Wallet is the source wallet location, on the wallet-path axis.
	Wallet string
}

func (r *LockerUploadRequest) Validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be a positive number: %w", ErrNotValid)
	}
	if err := ValidateLockerCode(NormalizeLockerCode(r.Code)); err != nil {
		return err
	}
	if strings.TrimSpace(r.Wallet) == "" {
		return fmt.Errorf("wallet is required: %w", ErrNotValid)
	}
	return nil
}

// Normalized returns a copy with the code case-normalized and the wallet
// converted to its axis.
func (r LockerUploadRequest) Normalized() LockerUploadRequest {
	r.Code = NormalizeLockerCode(r.Code)
	r.Wallet = NormalizeWalletPath(r.Wallet)
	return r
}

// LockerDownloadRequest asks the server to claim the contents of a locker
// into a wallet.
type LockerDownloadRequest struct {
	Code string
	// Wallet is the destination wallet location, on the wallet-path axis.
	Wallet string
}

func (r *LockerDownloadRequest) Validate() error {
	if err := ValidateLockerCode(NormalizeLockerCode(r.Code)); err != nil {
		return err
	}
	if strings.TrimSpace(r.Wallet) == "" {
		return fmt.Errorf("wallet is required: %w", ErrNotValid)
	}
	return nil
}

// Normalized returns a copy with the code case-normalized and the wallet
// converted to its axis.
func (r LockerDownloadRequest) Normalized() LockerDownloadRequest {
	r.Code = NormalizeLockerCode(r.Code)
	r.Wallet = NormalizeWalletPath(r.Wallet)
	return r
}

// SendMailRequest asks the server to send a mail message.
type SendMailRequest struct {
	To      string
	Subject string
	Body    string
}

func (r *SendMailRequest) Validate() error {
	if strings.TrimSpace(r.To) == "" {
		return fmt.Errorf("recipient is required: %w", ErrNotValid)
	}
	if strings.TrimSpace(r.Subject) == "" {
		return fmt.Errorf("subject is required: %w", ErrNotValid)
	}
	return nil
}
