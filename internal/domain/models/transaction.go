package models

import "time"

// TransactionStatus represents the status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusExecuted TransactionStatus = "EXECUTED"
	TransactionStatusFailed   TransactionStatus = "FAILED"
)

// Transaction represents a contract call sent by greenctl
type Transaction struct {
	Hash    string `json:"hash"`
	ChainID uint64 `json:"chainId"`

	Status      TransactionStatus `json:"status"`
	BlockNumber uint64            `json:"blockNumber,omitempty"`
	GasUsed     uint64            `json:"gasUsed,omitempty"`
	Sender      string            `json:"sender"`
	Nonce       uint64            `json:"nonce"`

	Target   string `json:"target"`
	Contract string `json:"contract"`
	Method   string `json:"method"`
	Args     []any  `json:"args"`

	CreatedAt time.Time `json:"createdAt"`
}
