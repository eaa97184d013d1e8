// Package apitest provides an in-process fake of the school REST API for
// the client and store test suites. It speaks the same wire contract as
// the real backend: bearer-token auth, the {data,total,page,limit,
// totalPages} list envelope (or a bare array where configured), JSON and
// multipart bodies, toggle sub-resources, statistics summaries, and
// {message} error payloads. It is test infrastructure, not a backend.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// reservedParams are list query parameters that never act as field filters.
var reservedParams = map[string]bool{
	"search":    true,
	"page":      true,
	"limit":     true,
	"sortBy":    true,
	"sortOrder": true,
	"dateFrom":  true,
	"dateTo":    true,
}

// searchFields are checked, in order, by free-text search and labeling.
var searchFields = []string{"name", "studentName", "title"}

// resourcePaths lists every collection the fake serves.
var resourcePaths = []string{
	"classes",
	"subjects",
	"groups",
	"batches",
	"admissions",
	"attendance",
	"teachers",
	"exams",
	"exam-categories",
}

type collection struct {
	bareArray bool
	stats     map[string]any
	seq       int
	items     []map[string]any // newest first
}

// Server is the fake API. All state is in memory and guarded by one
// mutex; the fake favors simplicity over throughput.
type Server struct {
	engine *gin.Engine
	secret []byte

	mu          sync.Mutex
	users       map[string]string // email -> bcrypt hash
	collections map[string]*collection
	failStatus  int
	failMessage string
}

// New creates a fake API with all resource families registered.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		engine:      gin.New(),
		secret:      []byte("apitest-signing-secret"),
		users:       make(map[string]string),
		collections: make(map[string]*collection),
	}
	for _, path := range resourcePaths {
		s.collections[path] = &collection{}
	}

	api := s.engine.Group("/api/v1")
	api.POST("/auth/login", s.login)

	authed := api.Group("", s.requireBearer, s.maybeFail)
	for _, path := range resourcePaths {
		g := authed.Group("/" + path)
		name := path
		g.GET("", func(c *gin.Context) { s.list(c, name) })
		g.POST("", func(c *gin.Context) { s.create(c, name) })
		g.GET("/:id", func(c *gin.Context) { s.get(c, name) })
		g.PUT("/:id", func(c *gin.Context) { s.update(c, name) })
		g.PATCH("/:id", func(c *gin.Context) { s.update(c, name) })
		g.DELETE("/:id", func(c *gin.Context) { s.remove(c, name) })
		g.GET("/:id/:action", func(c *gin.Context) { s.subGet(c, name) })
		g.PUT("/:id/:action", func(c *gin.Context) { s.toggle(c, name) })
		g.PATCH("/:id/:action", func(c *gin.Context) { s.toggle(c, name) })
	}

	return s
}

// Router returns the HTTP handler, for use with httptest.NewServer.
func (s *Server) Router() http.Handler { return s.engine }

// AddUser registers a login account.
func (s *Server) AddUser(email, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("apitest: hash password: %v", err))
	}
	s.mu.Lock()
	s.users[email] = string(hash)
	s.mu.Unlock()
}

// TokenFor issues a valid bearer token directly, bypassing login.
func (s *Server) TokenFor(email string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		panic(fmt.Sprintf("apitest: sign token: %v", err))
	}
	return signed
}

// Seed inserts items into a collection, first argument first in list
// order. Each item must carry an "_id".
func (s *Server) Seed(resource string, items ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(resource)
	for _, item := range items {
		col.items = append(col.items, item)
	}
}

// SetBareArray makes the collection's list endpoint return a bare JSON
// array instead of the pagination envelope.
func (s *Server) SetBareArray(resource string, bare bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(resource).bareArray = bare
}

// SetStats configures the statistics/summary payload for a collection.
func (s *Server) SetStats(resource string, stats map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(resource).stats = stats
}

// FailNext makes the next authenticated request fail with the given
// status and message payload.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failMessage = message
}

// Items returns a copy of a collection's current items, newest first.
func (s *Server) Items(resource string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(resource)
	out := make([]map[string]any, len(col.items))
	copy(out, col.items)
	return out
}

func (s *Server) collection(resource string) *collection {
	col, ok := s.collections[resource]
	if !ok {
		panic(fmt.Sprintf("apitest: unknown resource %q", resource))
	}
	return col
}

// --- middleware ---

func (s *Server) requireBearer(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if sub, err := claims.GetSubject(); err == nil {
			c.Set("userEmail", sub)
		}
	}
	c.Next()
}

func (s *Server) maybeFail(c *gin.Context) {
	s.mu.Lock()
	status, message := s.failStatus, s.failMessage
	s.failStatus, s.failMessage = 0, ""
	s.mu.Unlock()

	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"message": message})
		return
	}
	c.Next()
}

// --- auth ---

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	s.mu.Lock()
	hash, ok := s.users[req.Email]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}

	expires := time.Now().Add(time.Hour)
	c.JSON(http.StatusOK, gin.H{
		"token":     s.TokenFor(req.Email),
		"expiresAt": expires.Unix(),
	})
}

// --- resource handlers ---

func (s *Server) list(c *gin.Context, resource string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(resource)

	filtered := make([]map[string]any, 0, len(col.items))
	search := strings.ToLower(c.Query("search"))
	dateFrom, dateTo := c.Query("dateFrom"), c.Query("dateTo")

	for _, item := range col.items {
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		if !matchesFilters(item, c, resource) {
			continue
		}
		if !matchesDateRange(item, dateFrom, dateTo) {
			continue
		}
		filtered = append(filtered, item)
	}

	if sortBy := c.Query("sortBy"); sortBy != "" {
		desc := strings.EqualFold(c.Query("sortOrder"), "desc")
		sort.SliceStable(filtered, func(i, j int) bool {
			if desc {
				i, j = j, i
			}
			return compareValues(filtered[i][sortBy], filtered[j][sortBy])
		})
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	total := len(filtered)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageItems := filtered[start:end]

	if col.bareArray {
		c.JSON(http.StatusOK, pageItems)
		return
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       pageItems,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": totalPages,
	})
}

func (s *Server) get(c *gin.Context, resource string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, _ := s.find(resource, c.Param("id")); item != nil {
		c.JSON(http.StatusOK, item)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": resource + ": not found"})
}

func (s *Server) create(c *gin.Context, resource string) {
	fields, err := decodeBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(resource)
	col.seq++

	item := map[string]any{
		"_id":       fmt.Sprintf("%s-%d", resource, col.seq),
		"createdBy": c.GetString("userEmail"),
		"createdAt": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range fields {
		item[k] = v
	}

	// Newest first, matching the backend's default sort.
	col.items = append([]map[string]any{item}, col.items...)
	c.JSON(http.StatusCreated, item)
}

func (s *Server) update(c *gin.Context, resource string) {
	fields, err := decodeBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, _ := s.find(resource, c.Param("id"))
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": resource + ": not found"})
		return
	}
	for k, v := range fields {
		item[k] = v
	}
	item["updatedBy"] = c.GetString("userEmail")
	item["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	c.JSON(http.StatusOK, item)
}

func (s *Server) remove(c *gin.Context, resource string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(resource)

	item, idx := s.find(resource, c.Param("id"))
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": resource + ": not found"})
		return
	}
	col.items = append(col.items[:idx], col.items[idx+1:]...)
	c.Status(http.StatusNoContent)
}

func (s *Server) toggle(c *gin.Context, resource string) {
	action := c.Param("action")
	if action != "toggle-active" && action != "toggle-status" {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, _ := s.find(resource, c.Param("id"))
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": resource + ": not found"})
		return
	}

	if active, ok := item["isActive"].(bool); ok {
		item["isActive"] = !active
	} else if status, ok := item["status"].(string); ok {
		if status == "approved" {
			item["status"] = "pending"
		} else {
			item["status"] = "approved"
		}
	} else {
		item["isActive"] = true
	}
	item["updatedBy"] = c.GetString("userEmail")
	item["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	c.JSON(http.StatusOK, item)
}

func (s *Server) subGet(c *gin.Context, resource string) {
	if c.Param("id") == "statistics" && c.Param("action") == "summary" {
		s.mu.Lock()
		stats := s.collection(resource).stats
		s.mu.Unlock()
		if stats == nil {
			stats = map[string]any{}
		}
		c.JSON(http.StatusOK, stats)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
}

// find returns the item with the given id and its index, or (nil, -1).
// Caller holds the lock.
func (s *Server) find(resource, id string) (map[string]any, int) {
	col := s.collection(resource)
	for i, item := range col.items {
		if item["_id"] == id {
			return item, i
		}
	}
	return nil, -1
}

// --- request decoding ---

// decodeBody accepts either a JSON body or multipart form data. Multipart
// form values that parse as JSON (objects, arrays, numbers, booleans) are
// stored parsed; anything else stays a string. File parts are recorded as
// "<field>Url" the way the real backend stores uploads.
func decodeBody(c *gin.Context) (map[string]any, error) {
	contentType := c.GetHeader("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("invalid multipart body: %w", err)
		}

		fields := make(map[string]any)
		for key, values := range form.Value {
			if len(values) == 0 {
				continue
			}
			fields[key] = parseFormValue(values[0])
		}
		for key, files := range form.File {
			if len(files) == 0 {
				continue
			}
			fields[key+"Url"] = "/uploads/" + files[0].Filename
		}
		return fields, nil
	}

	fields := make(map[string]any)
	if err := c.ShouldBindJSON(&fields); err != nil {
		return nil, fmt.Errorf("invalid json body: %w", err)
	}
	return fields, nil
}

// parseFormValue decodes a multipart scalar: JSON-parseable text (nested
// arrays/objects, numbers, booleans) is stored structured, the rest as-is.
func parseFormValue(value string) any {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	switch trimmed[0] {
	case '{', '[', 't', 'f', 'n', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var parsed any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return parsed
		}
	}
	return value
}

// --- list matching ---

func matchesSearch(item map[string]any, search string) bool {
	for _, field := range searchFields {
		if v, ok := item[field].(string); ok {
			if strings.Contains(strings.ToLower(v), search) {
				return true
			}
		}
	}
	return false
}

// matchesFilters applies equality filters for every non-reserved query
// parameter. "category" matches the item's categoryId.
func matchesFilters(item map[string]any, c *gin.Context, resource string) bool {
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] || len(values) == 0 || values[0] == "" {
			continue
		}
		field := key
		if key == "category" {
			field = "categoryId"
		}
		if fmt.Sprint(item[field]) != values[0] {
			return false
		}
	}
	return true
}

func matchesDateRange(item map[string]any, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	date, ok := item["date"].(string)
	if !ok {
		return false
	}
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// compareValues orders two item field values for sorting. Mixed or
// unknown types compare by their printed form.
func compareValues(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}
