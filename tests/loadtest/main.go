package main

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	maxPages     = 5
)

var units = []string{"", "HOUR", "DAY", "WEEK", "MONTH"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// catalog is what the read phases pick targets from.
type catalog struct {
	monitors []string
	scopes   map[string][]string
}

func main() {
	fmt.Println("=== ScopeWatch Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	cat, err := discover()
	if err != nil {
		fmt.Printf("FAILED: %s\n", err)
		return
	}
	if len(cat.monitors) == 0 {
		fmt.Println("FAILED: no monitors in the entity store")
		return
	}
	fmt.Printf("Monitors: %d\n", len(cat.monitors))

	// Phase 1: cold pages, every request hits a distinct key first
	fmt.Println("\n--- Phase 1: Monitor pages (GET /monitor/{name}/{page}) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doGetMonitorPage(rng, cat)
	})

	// Phase 2: mixed dashboard browsing
	fmt.Println("\n--- Phase 2: Mixed browsing ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.20:
			return doGetHome()
		case r < 0.60:
			return doGetMonitorPage(rng, cat)
		case r < 0.80:
			return doGetScopes(rng, cat)
		default:
			return doGetScopeWatch(rng, cat)
		}
	})

	// Phase 3: signed URL issuance
	fmt.Println("\n--- Phase 3: Signed URLs (GET /monitor/{name}/scope/{value}/url) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doGetScopeURL(rng, cat)
	})
}

func discover() (*catalog, error) {
	var monitors []struct {
		Name string `json:"name"`
	}
	if err := getJSON(baseURL+"/", &monitors); err != nil {
		return nil, fmt.Errorf("list monitors: %w", err)
	}

	cat := &catalog{scopes: make(map[string][]string)}
	for _, m := range monitors {
		cat.monitors = append(cat.monitors, m.Name)

		var scopes []struct {
			Value  string  `json:"value"`
			Output *string `json:"output"`
		}
		if err := getJSON(baseURL+"/monitor/"+url.PathEscape(m.Name)+"/scopes", &scopes); err != nil {
			return nil, fmt.Errorf("list scopes of %s: %w", m.Name, err)
		}
		for _, s := range scopes {
			if s.Output != nil && *s.Output != "" {
				cat.scopes[m.Name] = append(cat.scopes[m.Name], s.Value)
			}
		}
	}
	return cat, nil
}

func getJSON(u string, v any) error {
	resp, err := httpClient.Get(u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-34s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 100))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-34s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 100))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

// get issues a GET and counts any status outside ok as an error.
func get(endpoint, u string, ok ...int) result {
	start := time.Now()
	resp, err := httpClient.Get(u)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	expected := false
	for _, code := range ok {
		if resp.StatusCode == code {
			expected = true
		}
	}
	return result{endpoint, resp.StatusCode, lat, !expected}
}

func pickMonitor(rng *rand.Rand, cat *catalog) string {
	return cat.monitors[rng.Intn(len(cat.monitors))]
}

func doGetHome() result {
	return get("GET /", baseURL+"/", http.StatusOK)
}

func doGetMonitorPage(rng *rand.Rand, cat *catalog) result {
	name := pickMonitor(rng, cat)
	u := fmt.Sprintf("%s/monitor/%s/%d", baseURL, url.PathEscape(name), rng.Intn(maxPages)+1)
	if unit := units[rng.Intn(len(units))]; unit != "" {
		u += "?unit=" + unit
	}
	return get("GET /monitor/{name}/{page}", u, http.StatusOK)
}

func doGetScopes(rng *rand.Rand, cat *catalog) result {
	name := pickMonitor(rng, cat)
	return get("GET /monitor/{name}/scopes", baseURL+"/monitor/"+url.PathEscape(name)+"/scopes", http.StatusOK)
}

func scopeTarget(rng *rand.Rand, cat *catalog) (string, string, bool) {
	name := pickMonitor(rng, cat)
	values := cat.scopes[name]
	if len(values) == 0 {
		return name, "missing", false
	}
	return name, values[rng.Intn(len(values))], true
}

func doGetScopeWatch(rng *rand.Rand, cat *catalog) result {
	name, value, found := scopeTarget(rng, cat)
	u := fmt.Sprintf("%s/monitor/%s/scope/%s", baseURL, url.PathEscape(name), url.PathEscape(value))
	if !found {
		return get("GET /monitor/{name}/scope/{value}", u, http.StatusNotFound)
	}
	return get("GET /monitor/{name}/scope/{value}", u, http.StatusOK)
}

func doGetScopeURL(rng *rand.Rand, cat *catalog) result {
	name, value, found := scopeTarget(rng, cat)
	u := fmt.Sprintf("%s/monitor/%s/scope/%s/url", baseURL, url.PathEscape(name), url.PathEscape(value))
	if !found {
		return get("GET /monitor/{name}/scope/{value}/url", u, http.StatusNotFound)
	}
	return get("GET /monitor/{name}/scope/{value}/url", u, http.StatusOK)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
