package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// taskScript is the sequence of status payloads a fake task walks through,
// one per poll.
type taskScript struct {
	statuses []map[string]interface{}
	next     int
}

// fakeServer is an in-memory vaultpost server good enough for end to end
// flows: it accepts start operations, serves scripted task statuses and
// keeps a wallet balance and locker contents.
type fakeServer struct {
	mu sync.Mutex

	srv *httptest.Server

	tasks   map[string]*taskScript
	nextID  int
	balance float64
	lockers map[string]float64
}

func newFakeServer() *fakeServer {
	f := &fakeServer{
		tasks:   map[string]*taskScript{},
		balance: 100,
		lockers: map[string]float64{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/wallet/import", f.handleImport)
	mux.HandleFunc("/api/v1/wallet/export", f.handleExport)
	mux.HandleFunc("/api/v1/locker/upload", f.handleLockerUpload)
	mux.HandleFunc("/api/v1/locker/download", f.handleLockerDownload)
	mux.HandleFunc("/api/v1/mail/send", f.handleMailSend)
	mux.HandleFunc("/api/v1/tasks/", f.handleTaskStatus)
	mux.HandleFunc("/api/v1/health", f.handleHealth)
	mux.HandleFunc("/api/v1/mail/ping", f.handleMailPing)
	mux.HandleFunc("/api/v1/mail/count", f.handleMailCount)
	mux.HandleFunc("/api/v1/wallet/balance", f.handleBalance)

	f.srv = httptest.NewServer(mux)
	return f
}

func (f *fakeServer) URL() string { return f.srv.URL }
func (f *fakeServer) Close()      { f.srv.Close() }

// startTask registers a scripted task and returns the start response that
// points at it.
func (f *fakeServer) startTask(w http.ResponseWriter, statuses []map[string]interface{}) {
	f.mu.Lock()
	f.nextID++
	id := fmt.Sprintf("task-%d", f.nextID)
	for _, s := range statuses {
		s["task_id"] = id
	}
	f.tasks[id] = &taskScript{statuses: statuses}
	f.mu.Unlock()

	writeJSON(w, map[string]interface{}{"success": true, "task_id": id})
}

func (f *fakeServer) handleImport(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.balance += 3
	f.mu.Unlock()

	f.startTask(w, []map[string]interface{}{
		{"status": "pending", "progress": 0},
		{"status": "running", "progress": 60},
		{
			"status":  "success",
			"message": "Imported 3 coins",
			"pown_results": map[string]int{
				"bank": 2, "fracked": 1, "counterfeit": 0,
			},
		},
	})
}

func (f *fakeServer) handleExport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	if req.Amount > f.balance {
		f.mu.Unlock()
		writeJSON(w, map[string]interface{}{"success": false, "message": "insufficient balance"})
		return
	}
	f.balance -= req.Amount
	f.mu.Unlock()

	f.startTask(w, []map[string]interface{}{
		{"status": "running", "progress": 50},
		{"status": "success", "exported": req.Amount, "receipt_id": "r-1"},
	})
}

func (f *fakeServer) handleLockerUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
		Code   string  `json:"code"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	f.balance -= req.Amount
	f.lockers[req.Code] += req.Amount
	f.mu.Unlock()

	f.startTask(w, []map[string]interface{}{
		{"status": "success", "receipt_id": "r-up"},
	})
}

func (f *fakeServer) handleLockerDownload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	amount, ok := f.lockers[req.Code]
	if !ok {
		f.mu.Unlock()
		writeJSON(w, map[string]interface{}{"success": false, "message": "locker is empty"})
		return
	}
	delete(f.lockers, req.Code)
	f.balance += amount
	f.mu.Unlock()

	f.startTask(w, []map[string]interface{}{
		{"status": "running", "progress": 10},
		{"status": "success", "amount": amount},
	})
}

func (f *fakeServer) handleMailSend(w http.ResponseWriter, r *http.Request) {
	// Mail sends complete synchronously.
	writeJSON(w, map[string]interface{}{"success": true, "message": "Mail queued"})
}

func (f *fakeServer) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Path[len("/api/v1/tasks/"):]

	f.mu.Lock()
	defer f.mu.Unlock()

	script, ok := f.tasks[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	status := script.statuses[script.next]
	if script.next < len(script.statuses)-1 {
		script.next++
	}
	writeJSON(w, status)
}

func (f *fakeServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"status": "ok", "version": "9.9.9"})
}

func (f *fakeServer) handleMailPing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"success": true})
}

func (f *fakeServer) handleMailCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"unread": 2, "total": 7})
}

func (f *fakeServer) handleBalance(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, map[string]interface{}{"balance": f.balance})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
