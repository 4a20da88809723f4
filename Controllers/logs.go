package Controllers

import (
	"bufio"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"KidGrow/middleware"
)

const requestLogPath = "logs/requests.log"

// LogsResponse pages through the JSON-line request log written by the logging
// middleware.
type LogsResponse struct {
	Logs       []middleware.LogData `json:"logs"`
	TotalLogs  int                  `json:"total_logs"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

// GetLogs serves the request log with optional date, path and status filters.
func GetLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 1000 {
		pageSize = 50
	}

	dateFrom, dateTo, err := logDateRange(c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format. Use YYYY-MM-DD",
		})
	}

	entries, err := readRequestLog(requestLogPath, dateFrom, dateTo)
	if err != nil {
		if os.IsNotExist(err) {
			entries = nil
		} else {
			log.Printf("Error reading request log: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to read logs",
			})
		}
	}

	entries = filterLogEntries(entries, c.Query("path"), c.Query("method"), c.Query("status"))

	total := len(entries)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return c.JSON(LogsResponse{
		Logs:       entries[start:end],
		TotalLogs:  total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// logDateRange defaults to today when neither bound is given.
func logDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" && toStr == "" {
		now := time.Now()
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 0, 1), nil
	}

	from := time.Unix(0, 0)
	to := time.Now()
	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}

func readRequestLog(path string, from, to time.Time) ([]middleware.LogData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []middleware.LogData
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry middleware.LogData
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			// skip malformed lines
			continue
		}
		if entry.Timestamp.Before(from) || !entry.Timestamp.Before(to) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

func filterLogEntries(entries []middleware.LogData, path, method, status string) []middleware.LogData {
	if path == "" && method == "" && status == "" {
		return entries
	}
	filtered := make([]middleware.LogData, 0, len(entries))
	for _, e := range entries {
		if path != "" && !strings.Contains(e.Path, path) {
			continue
		}
		if method != "" && !strings.EqualFold(e.Method, method) {
			continue
		}
		if status != "" && strconv.Itoa(e.Status) != status {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
