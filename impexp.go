package rebalance

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// this file contains the import adapter for the brokerage's account export:
// a two-section delimited file, position rows first, transaction rows after.

// positionRow accumulates one position row field by field; a row only
// counts once every expected column was seen.
type positionRow struct {
	account string
	symbol  Symbol
	shares  float64
	price   float64
	value   float64

	accountSeen bool
	symbolSeen  bool
	sharesSeen  bool
	priceSeen   bool
	valueSeen   bool
}

func (p positionRow) finished() bool {
	return p.accountSeen && p.symbolSeen && p.sharesSeen && p.priceSeen && p.valueSeen
}

// ParseExport parses the downloaded account export into a Holdings store.
//
// The file has two delimited sections keyed by their header rows: positions
// (Account Number, Symbol, Shares, Share Price, Total Value) and
// transactions (Account Number, Trade Date, Symbol, Shares, Net Amount,
// Transaction Type). The transaction section begins at the row containing
// "Trade Date". Position rows whose symbol is empty or a single character
// are non-holding metadata and are skipped. Quote slots not priced by any
// position row keep their 1.0 default.
func ParseExport(r io.Reader) (*Holdings, error) {
	h := NewHoldings(Quotes())

	var header, txHeader []string
	inPositions := true

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		row := scanner.Text()
		if !strings.Contains(row, ",") {
			continue
		}
		if strings.Contains(row, "Trade Date") {
			inPositions = false
		}
		fields := strings.Split(row, ",")
		if len(fields) <= 4 {
			continue
		}

		switch {
		case inPositions:
			if header == nil {
				header = fields
				continue
			}
			pos, err := parsePosition(fields, header)
			if err != nil {
				return nil, err
			}
			if !pos.finished() {
				continue
			}
			h.addPosition(pos)
		case txHeader == nil:
			txHeader = fields
		default:
			tx, ok, err := parseTransaction(fields, txHeader)
			if err != nil {
				return nil, err
			}
			if ok {
				h.transactions = append(h.transactions, tx)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	return h, nil
}

func parsePosition(fields, header []string) (positionRow, error) {
	var pos positionRow
	for i, value := range fields {
		if i >= len(header) {
			break
		}
		var err error
		switch header[i] {
		case "Account Number":
			pos.account = value
			pos.accountSeen = value != ""
		case "Symbol":
			if len(value) <= 1 {
				// Metadata row, not a holding.
				return positionRow{}, nil
			}
			pos.symbol = ParseSymbol(value)
			pos.symbolSeen = true
		case "Shares":
			pos.shares, err = strconv.ParseFloat(value, 64)
			pos.sharesSeen = err == nil
		case "Share Price":
			pos.price, err = strconv.ParseFloat(value, 64)
			pos.priceSeen = err == nil
		case "Total Value":
			pos.value, err = strconv.ParseFloat(value, 64)
			pos.valueSeen = err == nil
		}
		if err != nil {
			return positionRow{}, fmt.Errorf("invalid position field %q for %q: %w", value, header[i], err)
		}
	}
	return pos, nil
}

// addPosition folds a finished position row into the per-account vectors
// and the quote vector. Unsupported symbols aggregate into Other by value
// only: their identity, share count and price are not preserved.
func (h *Holdings) addPosition(pos positionRow) {
	values := h.accounts[pos.account]
	shares := h.shares[pos.account]
	if pos.symbol == Other {
		values = values.Plus(Other, pos.value)
		shares = shares.With(Other, 1)
		h.quotes = h.quotes.With(Other, 1)
	} else {
		values = values.With(pos.symbol, pos.value)
		shares = shares.With(pos.symbol, pos.shares)
		h.quotes = h.quotes.With(pos.symbol, pos.price)
	}
	h.accounts[pos.account] = values
	h.shares[pos.account] = shares
}

func parseTransaction(fields, header []string) (Transaction, bool, error) {
	var tx Transaction
	var accountSeen, dateSeen, symbolSeen, sharesSeen, amountSeen, kindSeen bool
	for i, value := range fields {
		if i >= len(header) {
			break
		}
		var err error
		switch header[i] {
		case "Account Number":
			tx.Account = value
			accountSeen = value != ""
		case "Trade Date":
			tx.TradeDate, err = ParseDate(value)
			dateSeen = err == nil
		case "Symbol":
			tx.Symbol = ParseSymbol(value)
			symbolSeen = true
		case "Shares":
			tx.Shares, err = decimal.NewFromString(value)
			sharesSeen = err == nil
		case "Net Amount":
			tx.NetAmount, err = decimal.NewFromString(value)
			amountSeen = err == nil
		case "Transaction Type":
			tx.Kind = ParseTxKind(value)
			tx.RawKind = value
			kindSeen = true
		}
		if err != nil {
			return Transaction{}, false, fmt.Errorf("invalid transaction field %q for %q: %w", value, header[i], err)
		}
	}
	return tx, accountSeen && dateSeen && symbolSeen && sharesSeen && amountSeen && kindSeen, nil
}
