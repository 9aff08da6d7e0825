package txfetcher

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/chaincfg"
	"github.com/satoshilab/scriptcore/infrastructure/config"
	"github.com/satoshilab/scriptcore/util/chainhash"
	"github.com/satoshilab/scriptcore/wire"
)

const (
	defaultTimeout = 30 * time.Second

	// maxResponseSize bounds the hex body of one transaction. Twice the
	// largest standard transaction plus a trailing newline.
	maxResponseSize = 2*400000 + 1
)

// Config holds the settings of an HTTPFetcher.
type Config struct {
	// MainnetURL and TestnetURL are the explorer base URLs of each
	// network. Empty values default to the explorer of the matching
	// chaincfg network.
	MainnetURL string
	TestnetURL string

	// Dial opens connections to the explorer. It defaults to
	// net.DialTimeout and may go through a SOCKS proxy.
	Dial config.DialFunc

	// Timeout bounds each request.
	Timeout time.Duration
}

// HTTPFetcher looks up raw transactions on a REST block explorer at
// <base URL>/tx/<id>/hex.
type HTTPFetcher struct {
	mainnetURL string
	testnetURL string
	client     *http.Client
}

// New returns an HTTPFetcher configured by cfg.
func New(cfg *Config) *HTTPFetcher {
	mainnetURL := cfg.MainnetURL
	if mainnetURL == "" {
		mainnetURL = chaincfg.MainnetParams.ExplorerURL
	}
	testnetURL := cfg.TestnetURL
	if testnetURL == "" {
		testnetURL = chaincfg.TestnetParams.ExplorerURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	dial := cfg.Dial
	if dial == nil {
		dial = net.DialTimeout
	}

	transport := &http.Transport{
		DialContext: func(_ context.Context, network, addr string) (net.Conn, error) {
			return dial(network, addr, timeout)
		},
		TLSHandshakeTimeout: timeout,
	}
	return &HTTPFetcher{
		mainnetURL: strings.TrimSuffix(mainnetURL, "/"),
		testnetURL: strings.TrimSuffix(testnetURL, "/"),
		client:     &http.Client{Transport: transport, Timeout: timeout},
	}
}

func (f *HTTPFetcher) txURL(txID *chainhash.Hash, testnet bool) string {
	base := f.mainnetURL
	if testnet {
		base = f.testnetURL
	}
	return base + "/tx/" + txID.String() + "/hex"
}

// FetchTransaction implements txscript.TxFetcher. Segregated witness data
// in the response is discarded, and the transaction is checked to hash to
// txID.
func (f *HTTPFetcher) FetchTransaction(ctx context.Context, txID *chainhash.Hash,
	testnet bool) (*wire.MsgTx, error) {

	url := f.txURL(txID, testnet)
	log.Debugf("Fetching transaction %s from %s", txID, url)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	response, err := f.client.Do(request)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch transaction %s", txID)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read transaction %s", txID)
	}
	if response.StatusCode != http.StatusOK {
		return nil, errors.Errorf("explorer returned %s for transaction %s: %s",
			response.Status, txID, strings.TrimSpace(string(body)))
	}
	if len(body) > maxResponseSize {
		return nil, errors.Errorf("transaction %s is larger than %d bytes", txID, maxResponseSize/2)
	}

	raw, err := hex.DecodeString(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, errors.Wrapf(err, "explorer returned malformed hex for transaction %s", txID)
	}

	tx := &wire.MsgTx{Testnet: testnet}
	if err := tx.DeserializeStrippingWitness(bytes.NewReader(raw)); err != nil {
		return nil, errors.Wrapf(err, "failed to parse transaction %s", txID)
	}
	if fetchedID := tx.TxID(); !fetchedID.IsEqual(txID) {
		return nil, errors.Errorf("explorer returned transaction %s while asking for %s", fetchedID, txID)
	}
	return tx, nil
}
