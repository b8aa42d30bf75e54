// Package web3 binds the on-chain collaborator of the message codec: a
// messenger contract that stores an opaque encrypted blob and re-emits it
// verbatim as an event payload. The contract never decodes or inspects the
// blob; this package only moves bytes across the boundary.
package web3

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/zkmsg/zkmsg/log"
	"github.com/zkmsg/zkmsg/types"
)

// messengerABIJSON is the application binary interface of the messenger
// contract. The payload is opaque to the contract and is emitted unmodified.
const messengerABIJSON = `[
  {
    "type": "function",
    "name": "sendMessage",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "recipient", "type": "address"},
      {"name": "messageType", "type": "uint8"},
      {"name": "payload", "type": "bytes"}
    ],
    "outputs": []
  },
  {
    "type": "event",
    "name": "MessageSent",
    "inputs": [
      {"name": "sender", "type": "address", "indexed": true},
      {"name": "recipient", "type": "address", "indexed": true},
      {"name": "messageType", "type": "uint8", "indexed": false},
      {"name": "payload", "type": "bytes", "indexed": false}
    ]
  }
]`

var messengerABI = mustParseABI(messengerABIJSON)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid messenger ABI: %v", err))
	}
	return parsed
}

// MessageEnvelope is the event payload carried by the MessageSent event:
// sender and recipient addresses, the application message type, and the
// encrypted blob, verbatim.
type MessageEnvelope struct {
	Sender      common.Address `json:"sender"      cbor:"0,keyasint"`
	Recipient   common.Address `json:"recipient"   cbor:"1,keyasint"`
	MessageType uint8          `json:"messageType" cbor:"2,keyasint"`
	Payload     types.HexBytes `json:"payload"     cbor:"3,keyasint"`
}

// Messenger wraps the deployed messenger contract.
type Messenger struct {
	Address common.Address

	contract *bind.BoundContract
	cli      *ethclient.Client
	chainID  *big.Int
	privKey  *ecdsa.PrivateKey
	account  common.Address
}

// NewMessenger connects to the given web3 endpoint and binds the messenger
// contract at the given address.
func NewMessenger(address common.Address, web3rpc string) (*Messenger, error) {
	cli, err := ethclient.Dial(web3rpc)
	if err != nil {
		return nil, fmt.Errorf("failed to dial web3 endpoint: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	chainID, err := cli.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	log.Debugw("bound messenger contract", "address", address.Hex(), "chainID", chainID.String())
	return &Messenger{
		Address:  address,
		contract: bind.NewBoundContract(address, messengerABI, cli, cli, cli),
		cli:      cli,
		chainID:  chainID,
	}, nil
}

// SetAccountPrivateKey sets the private key to be used for signing
// transactions.
func (m *Messenger) SetAccountPrivateKey(hexPrivKey string) error {
	var err error
	m.privKey, err = crypto.HexToECDSA(strings.TrimPrefix(hexPrivKey, "0x"))
	if err != nil {
		return fmt.Errorf("failed to parse private key: %w", err)
	}
	m.account = crypto.PubkeyToAddress(m.privKey.PublicKey)
	return nil
}

// AccountAddress returns the address of the account used to sign transactions.
func (m *Messenger) AccountAddress() common.Address {
	return m.account
}

// SendMessage submits the encrypted payload for the recipient to the
// messenger contract and returns the transaction.
func (m *Messenger) SendMessage(ctx context.Context, recipient common.Address,
	messageType uint8, payload types.HexBytes,
) (*gethtypes.Transaction, error) {
	opts, err := m.authTransactOpts(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := m.contract.Transact(opts, "sendMessage", recipient, messageType, []byte(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	log.Infow("message submitted",
		"tx", tx.Hash().Hex(),
		"recipient", recipient.Hex(),
		"payloadBytes", len(payload),
	)
	return tx, nil
}

// FilterMessageSent returns the MessageSent envelopes emitted between the
// given blocks, optionally restricted to a recipient address.
func (m *Messenger) FilterMessageSent(ctx context.Context, fromBlock, toBlock uint64,
	recipient *common.Address,
) ([]*MessageEnvelope, error) {
	eventID := messengerABI.Events["MessageSent"].ID
	topics := [][]common.Hash{{eventID}, nil}
	if recipient != nil {
		topics = append(topics, []common.Hash{common.BytesToHash(recipient.Bytes())})
	}
	logs, err := m.cli.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{m.Address},
		Topics:    topics,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter logs: %w", err)
	}
	envelopes := make([]*MessageEnvelope, 0, len(logs))
	for i := range logs {
		envelope, err := ParseMessageSent(&logs[i])
		if err != nil {
			return nil, err
		}
		envelopes = append(envelopes, envelope)
	}
	return envelopes, nil
}

// ParseMessageSent decodes a MessageSent log into its envelope.
func ParseMessageSent(vLog *gethtypes.Log) (*MessageEnvelope, error) {
	event := messengerABI.Events["MessageSent"]
	if len(vLog.Topics) != 3 || vLog.Topics[0] != event.ID {
		return nil, fmt.Errorf("log is not a MessageSent event")
	}
	values, err := event.Inputs.NonIndexed().Unpack(vLog.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack MessageSent data: %w", err)
	}
	messageType, ok := values[0].(uint8)
	if !ok {
		return nil, fmt.Errorf("unexpected messageType value %T", values[0])
	}
	payload, ok := values[1].([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected payload value %T", values[1])
	}
	return &MessageEnvelope{
		Sender:      common.BytesToAddress(vLog.Topics[1].Bytes()),
		Recipient:   common.BytesToAddress(vLog.Topics[2].Bytes()),
		MessageType: messageType,
		Payload:     payload,
	}, nil
}

// authTransactOpts creates the transact options with the private key
// configured in the Messenger. It sets the nonce, gas tip cap, and gas limit.
func (m *Messenger) authTransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if m.privKey == nil {
		return nil, fmt.Errorf("no private key set")
	}
	auth, err := bind.NewKeyedTransactorWithChainID(m.privKey, m.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	nonce, err := m.cli.PendingNonceAt(ctx, m.account)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	auth.Nonce = new(big.Int).SetUint64(nonce)
	if auth.GasTipCap, err = m.cli.SuggestGasTipCap(ctx); err != nil {
		return nil, fmt.Errorf("failed to get gas tip cap: %w", err)
	}
	auth.GasLimit = 1000000
	return auth, nil
}
