// Package mockserver imitates the extraction service for local development
// and integration tests. It performs no document analysis.
package mockserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"contract-extractor/cache"
)

// RequestIDHeader carries the per-request ID.
const RequestIDHeader = "X-Request-ID"

const (
	outputTTL     = 30 * time.Minute
	outputEntries = 50
)

// FieldKeys are the fields the service extracts for every contract.
var FieldKeys = []string{
	"termination_and_amendment_terms",
	"obligations_and_deliverables",
	"key_dates_and_deadlines",
	"payment_and_fee_structures",
	"party_information",
	"type_of_contract",
	"jurisdiction_and_governing_laws",
	"confidentiality_and_non_disclosure",
}

// Extractor produces the field values for each contract found in a document.
type Extractor func(filename string, content []byte) ([]map[string]*string, error)

type Server struct {
	extractor Extractor
	log       logrus.FieldLogger

	outputs *cache.OutputCache
}

func New(extractor Extractor, log logrus.FieldLogger) *Server {
	if extractor == nil {
		extractor = EchoExtractor
	}
	return &Server{
		extractor: extractor,
		log:       log,
		outputs:   cache.NewOutputCache(outputTTL, outputEntries),
	}
}

// Close releases the output cache.
func (s *Server) Close() {
	s.outputs.Close()
}

// Router builds the gin engine serving /extract and /download.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestID())
	router.Use(gin.Recovery())

	router.POST("/extract", s.Extract)
	router.GET("/download", s.Download)

	return router
}

// Extract handles a document upload.
func (s *Server) Extract(c *gin.Context) {
	log := s.log.WithField("request_id", c.GetString("request_id"))

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file provided."})
		return
	}
	log.WithField("file", header.Filename).Info("received file")

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if ext != "pdf" && ext != "doc" && ext != "docx" {
		log.WithField("extension", ext).Warn("unsupported file type")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported file type."})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred during document processing."})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred during document processing."})
		return
	}

	contracts, err := s.extractor(header.Filename, content)
	if err != nil {
		log.WithError(err).Error("error during processing")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred during document processing."})
		return
	}

	output, err := json.MarshalIndent(contracts, "", "    ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred during document processing."})
		return
	}
	s.outputs.Put(c.GetString("request_id"), output)
	log.WithField("contracts", len(contracts)).Info("extraction complete")

	c.Data(http.StatusOK, "application/json", envelope(contracts))
}

// Download serves the output of the last successful extraction, or of the
// request named by the id query parameter.
func (s *Server) Download(c *gin.Context) {
	var output []byte
	var ok bool
	if id := c.Query("id"); id != "" {
		output, ok = s.outputs.Get(id)
	} else {
		output, ok = s.outputs.Latest()
	}

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "No output available."})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="output.json"`)
	c.Data(http.StatusOK, "application/json", output)
}

// envelope writes the success body by hand so contracts and fields keep
// their order.
func envelope(contracts []map[string]*string) []byte {
	var sb strings.Builder
	sb.WriteString(`{"results":{`)
	for i, fields := range contracts {
		if i > 0 {
			sb.WriteString(",")
		}
		key, _ := json.Marshal(fmt.Sprintf("Contract %d", i+1))
		sb.Write(key)
		sb.WriteString(":{")
		for j, name := range FieldKeys {
			if j > 0 {
				sb.WriteString(",")
			}
			k, _ := json.Marshal(name)
			v, _ := json.Marshal(fields[name])
			sb.Write(k)
			sb.WriteString(":")
			sb.Write(v)
		}
		sb.WriteString("}")
	}
	sb.WriteString(`},"download_url":"/download"}`)
	return []byte(sb.String())
}

// EchoExtractor reports a single contract describing the upload itself.
func EchoExtractor(filename string, content []byte) ([]map[string]*string, error) {
	party := "Parties named in " + filename
	kind := fmt.Sprintf("Document of %d bytes", len(content))
	fields := make(map[string]*string, len(FieldKeys))
	for _, key := range FieldKeys {
		fields[key] = nil
	}
	fields["party_information"] = &party
	fields["type_of_contract"] = &kind
	return []map[string]*string{fields}, nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
