package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"contract-extractor/models"
)

var (
	ErrNotObject        = errors.New("response is not a JSON object")
	ErrResultsNotObject = errors.New("results is not a JSON object")
	ErrTrailingData     = errors.New("unexpected data after response")
)

// DecodePayload decodes an extraction envelope, keeping the order of the
// results mapping and of every record's fields. A body that cannot be decoded
// yields a failure payload carrying the body's message, or the decode error
// text when there is none, together with the error itself. Repeated keys keep
// their first position and their last value.
func DecodePayload(body []byte) (models.Payload, error) {
	payload, err := decodeEnvelope(body)
	if err != nil {
		message := payload.Message
		if message == "" {
			message = err.Error()
		}
		return models.FailurePayload(message), err
	}
	return payload, nil
}

func decodeEnvelope(body []byte) (models.Payload, error) {
	var payload models.Payload
	var resultsErr error

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := expectObject(dec); err != nil {
		return payload, err
	}

	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return payload, err
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return payload, fmt.Errorf("failed to decode %q: %w", key, err)
		}

		switch key {
		case "results":
			payload.Kind = models.PayloadFailure
			payload.Results = nil
			resultsErr = nil

			// null, false, "" and 0 mean no results
			if _, missing := scalarText(raw); missing {
				continue
			}
			results, err := decodeResults(raw)
			if errors.Is(err, ErrResultsNotObject) {
				resultsErr = err
				continue
			}
			if err != nil {
				return payload, err
			}
			payload.Kind = models.PayloadSuccess
			payload.Results = results
		case "message":
			payload.Message, _ = scalarText(raw)
		case "download_url":
			payload.DownloadURL, _ = scalarText(raw)
		}
	}

	if _, err := dec.Token(); err != nil {
		return payload, fmt.Errorf("failed to decode response: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return payload, ErrTrailingData
	}

	if resultsErr != nil {
		return payload, resultsErr
	}
	return payload, nil
}

func decodeResults(raw json.RawMessage) ([]models.Contract, error) {
	if firstByte(raw) != '{' {
		return nil, ErrResultsNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectObject(dec); err != nil {
		return nil, err
	}

	results := []models.Contract{}
	index := make(map[string]int)
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		var record json.RawMessage
		if err := dec.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode contract %q: %w", key, err)
		}

		contract := models.Contract{Key: key}
		if firstByte(record) == '{' {
			fields, err := decodeFields(record)
			if err != nil {
				return nil, fmt.Errorf("failed to decode contract %q: %w", key, err)
			}
			contract.Fields = fields
		}
		if i, seen := index[key]; seen {
			results[i] = contract
			continue
		}
		index[key] = len(results)
		results = append(results, contract)
	}

	return results, nil
}

func decodeFields(raw json.RawMessage) ([]models.Field, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectObject(dec); err != nil {
		return nil, err
	}

	var fields []models.Field
	index := make(map[string]int)
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to decode field %q: %w", key, err)
		}

		text, missing := scalarText(value)
		field := models.Field{Key: key, Value: text, Missing: missing}
		if i, seen := index[key]; seen {
			fields[i] = field
			continue
		}
		index[key] = len(fields)
		fields = append(fields, field)
	}

	return fields, nil
}

// scalarText renders a raw JSON value as display text. missing reports the
// values a browser would treat as falsy: null, "", false and 0.
func scalarText(raw json.RawMessage) (text string, missing bool) {
	switch firstByte(raw) {
	case 0, 'n':
		return "", true
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw), false
		}
		return s, s == ""
	case 't':
		return "true", false
	case 'f':
		return "false", true
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return string(raw), false
		}
		return buf.String(), false
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return string(raw), false
		}
		f, err := n.Float64()
		return n.String(), err == nil && f == 0
	}
}

func expectObject(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("unexpected token %v", tok)
	}
	return key, nil
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
