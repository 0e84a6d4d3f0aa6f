package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/rate_ledger/internal/core/domain"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeHistoryToken creates a token for the position right after rec in history order.
func EncodeHistoryToken(rec domain.RateRecord) string {
	return EncodeMultiFieldToken(
		rec.EffectiveMonth.UTC().Format(timeFormat),
		rec.RecordedAt.UTC().Format(timeFormat),
		strconv.FormatInt(rec.Sequence, 10),
	)
}

// DecodeHistoryToken parses a token back into the ordering key of the last record of a page.
// Only EffectiveMonth, RecordedAt and Sequence are set on the returned record.
func DecodeHistoryToken(token string) (domain.RateRecord, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return domain.RateRecord{}, err
	}
	if len(parts) != 3 {
		return domain.RateRecord{}, fmt.Errorf("invalid pagination token format (split)")
	}

	effectiveMonth, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return domain.RateRecord{}, fmt.Errorf("invalid pagination token format (effective month parse): %w", err)
	}
	recordedAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return domain.RateRecord{}, fmt.Errorf("invalid pagination token format (recorded_at parse): %w", err)
	}
	seq, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return domain.RateRecord{}, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}

	return domain.RateRecord{EffectiveMonth: effectiveMonth, RecordedAt: recordedAt, Sequence: seq}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
