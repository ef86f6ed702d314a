// Package zknode leases UUIDv1 node identifiers from ZooKeeper.
//
// Hosts without a usable hardware address fall back to random nodes, which
// may collide across a large fleet. A Registry instead assigns every
// instance of a service a unique worker id, recovered across restarts from
// ZooKeeper or a local cache file, and exposes it as a 48-bit node:
//
//	reg, err := zknode.Dial(zknode.Config{
//	    Servers:  []string{"127.0.0.1:2181"},
//	    Service:  "order-service",
//	    Instance: "10.0.0.7:8080",
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	defer reg.Close()
//
//	gen := guuid.NewGenerator(guuid.WithHardwareAddr(reg.HardwareAddr))
//	id, err := gen.NewV1()
package zknode

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-zookeeper/zk"
	"go.uber.org/zap"

	"github.com/Lzww0608/guuid/v2"
)

const (
	DefaultRoot              = "/guuid_nodes"
	DefaultSessionTimeout    = 5 * time.Second
	DefaultHeartbeatInterval = 3 * time.Second

	seqPrefix = "seq-"
)

var (
	// ErrClockRollback is returned when the local clock is behind the last
	// time this instance reported. Time-based UUIDs generated now could
	// repeat ones generated before.
	ErrClockRollback = errors.New("zknode: clock moved backwards")

	// ErrClosed is returned by HardwareAddr after Close.
	ErrClosed = errors.New("zknode: registry closed")
)

// Conn is the subset of *zk.Conn used by a Registry.
type Conn interface {
	Exists(path string) (bool, *zk.Stat, error)
	Get(path string) ([]byte, *zk.Stat, error)
	Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error)
	Set(path string, data []byte, version int32) (*zk.Stat, error)
	Close()
}

// Config describes where and as whom a Registry registers.
type Config struct {
	Servers []string // ZooKeeper ensemble, used by Dial
	Root    string   // root znode, DefaultRoot if empty
	Service string   // service name, one znode per service
	// Instance is the stable identity of this process within the service,
	// typically host:port. The same instance always gets the same worker id.
	Instance string
	// CacheDir holds the local recovery file. Empty disables the cache.
	CacheDir string

	SessionTimeout time.Duration
	// HeartbeatInterval between LastTime refreshes. Negative disables the
	// heartbeat goroutine.
	HeartbeatInterval time.Duration

	// Now reads the current time. Defaults to time.Now.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.SessionTimeout == 0 {
		c.SessionTimeout = DefaultSessionTimeout
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

func (c Config) validate() error {
	if c.Service == "" || strings.Contains(c.Service, "/") {
		return fmt.Errorf("zknode: invalid service name %q", c.Service)
	}
	if c.Instance == "" || strings.Contains(c.Instance, "/") {
		return fmt.Errorf("zknode: invalid instance name %q", c.Instance)
	}
	if !strings.HasPrefix(c.Root, "/") {
		return fmt.Errorf("zknode: root %q must be absolute", c.Root)
	}
	return nil
}

// NodeInfo is the record kept in ZooKeeper and in the cache file.
type NodeInfo struct {
	LastTime   int64  `json:"last_time"`   // last time this instance was alive, Unix ms
	CreateTime int64  `json:"create_time"` // Unix ms
	WorkerID   uint32 `json:"worker_id"`
}

// Registry holds the worker id leased for one service instance.
type Registry struct {
	conn    Conn
	cfg     Config
	logger  *zap.Logger
	nodeKey string

	mu     sync.Mutex
	info   NodeInfo
	closed bool

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// zkLogger routes the ZooKeeper client's log output through zap.
type zkLogger struct {
	*zap.SugaredLogger
}

func (l zkLogger) Printf(format string, args ...interface{}) {
	l.Infof(format, args...)
}

// Dial connects to the ZooKeeper ensemble in cfg.Servers and registers.
func Dial(cfg Config, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	if len(cfg.Servers) == 0 {
		return nil, errors.New("zknode: no servers configured")
	}

	conn, _, err := zk.Connect(cfg.Servers, cfg.SessionTimeout, zk.WithLogger(zkLogger{logger.Sugar()}))
	if err != nil {
		return nil, fmt.Errorf("zknode: connect: %w", err)
	}
	r, err := New(conn, cfg, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return r, nil
}

// New registers over an established connection. The Registry owns conn
// and closes it on Close.
func New(conn Conn, cfg Config, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		conn:   conn,
		cfg:    cfg,
		logger: logger.With(zap.String("service", cfg.Service), zap.String("instance", cfg.Instance)),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if err := r.register(); err != nil {
		return nil, err
	}

	if cfg.HeartbeatInterval > 0 {
		go r.heartbeat(cfg.HeartbeatInterval)
	} else {
		close(r.done)
	}
	return r, nil
}

func (r *Registry) nowMillis() int64 {
	return r.cfg.Now().UnixMilli()
}

// register recovers this instance's worker id from ZooKeeper or the local
// cache, or allocates a new one, and records it in both.
func (r *Registry) register() error {
	servicePath := path.Join(r.cfg.Root, r.cfg.Service)
	if err := r.ensurePath(servicePath); err != nil {
		return err
	}
	r.nodeKey = path.Join(servicePath, r.cfg.Instance)

	now := r.nowMillis()
	var info NodeInfo

	exists, _, err := r.conn.Exists(r.nodeKey)
	if err != nil {
		return fmt.Errorf("zknode: check %s: %w", r.nodeKey, err)
	}

	if exists {
		data, _, err := r.conn.Get(r.nodeKey)
		if err != nil {
			return fmt.Errorf("zknode: get %s: %w", r.nodeKey, err)
		}
		if err := json.Unmarshal(data, &info); err != nil {
			return fmt.Errorf("zknode: decode %s: %w", r.nodeKey, err)
		}
		if now < info.LastTime {
			return fmt.Errorf("%w: %d < %d", ErrClockRollback, now, info.LastTime)
		}
		r.logger.Info("recovered worker id from zookeeper", zap.Uint32("worker_id", info.WorkerID))
	} else if cached, err := r.loadLocalCache(); err == nil {
		info = cached
		if now < info.LastTime {
			return fmt.Errorf("%w: %d < %d", ErrClockRollback, now, info.LastTime)
		}
		r.logger.Info("recovered worker id from local cache", zap.Uint32("worker_id", info.WorkerID))
	} else {
		id, err := r.allocate(servicePath)
		if err != nil {
			return err
		}
		info = NodeInfo{WorkerID: id, CreateTime: now}
		r.logger.Info("allocated worker id", zap.Uint32("worker_id", id))
	}
	info.LastTime = now

	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	if exists {
		_, err = r.conn.Set(r.nodeKey, data, -1)
	} else {
		_, err = r.conn.Create(r.nodeKey, data, 0, zk.WorldACL(zk.PermAll))
	}
	if err != nil {
		return fmt.Errorf("zknode: register %s: %w", r.nodeKey, err)
	}

	if err := r.saveLocalCache(info); err != nil {
		r.logger.Warn("write local cache", zap.Error(err))
	}

	r.info = info
	return nil
}

// allocate takes the next number of the service's sequential znode counter.
func (r *Registry) allocate(servicePath string) (uint32, error) {
	p, err := r.conn.Create(path.Join(servicePath, seqPrefix), nil, zk.FlagSequence, zk.WorldACL(zk.PermAll))
	if err != nil {
		return 0, fmt.Errorf("zknode: allocate worker id: %w", err)
	}
	i := strings.LastIndex(p, seqPrefix)
	if i < 0 {
		return 0, fmt.Errorf("zknode: unexpected sequence node %q", p)
	}
	id, err := strconv.ParseUint(p[i+len(seqPrefix):], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("zknode: unexpected sequence node %q: %w", p, err)
	}
	return uint32(id), nil
}

// ensurePath creates every missing znode along p.
func (r *Registry) ensurePath(p string) error {
	cur := ""
	for _, part := range strings.Split(strings.Trim(p, "/"), "/") {
		cur += "/" + part
		exists, _, err := r.conn.Exists(cur)
		if err != nil {
			return fmt.Errorf("zknode: check %s: %w", cur, err)
		}
		if exists {
			continue
		}
		if _, err := r.conn.Create(cur, []byte{}, 0, zk.WorldACL(zk.PermAll)); err != nil && !errors.Is(err, zk.ErrNodeExists) {
			return fmt.Errorf("zknode: create %s: %w", cur, err)
		}
	}
	return nil
}

// heartbeat periodically refreshes LastTime until Close.
func (r *Registry) heartbeat(interval time.Duration) {
	defer close(r.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			// Errors are logged; ZooKeeper may be briefly unavailable.
			_ = r.refresh()
		}
	}
}

// refresh records the current time as this instance's LastTime.
func (r *Registry) refresh() error {
	now := r.nowMillis()

	r.mu.Lock()
	if now < r.info.LastTime {
		last := r.info.LastTime
		r.mu.Unlock()
		r.logger.Warn("clock rollback detected during heartbeat", zap.Int64("now", now), zap.Int64("last", last))
		return fmt.Errorf("%w: %d < %d", ErrClockRollback, now, last)
	}
	r.info.LastTime = now
	info := r.info
	r.mu.Unlock()

	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	if _, err := r.conn.Set(r.nodeKey, data, -1); err != nil {
		r.logger.Warn("update node info", zap.String("path", r.nodeKey), zap.Error(err))
		return err
	}
	if err := r.saveLocalCache(info); err != nil {
		r.logger.Warn("write local cache", zap.Error(err))
	}
	return nil
}

func (r *Registry) cacheFile() string {
	name := strings.NewReplacer(":", "_", string(filepath.Separator), "_").Replace(r.cfg.Service + "_" + r.cfg.Instance)
	return filepath.Join(r.cfg.CacheDir, ".guuid_node_"+name)
}

func (r *Registry) saveLocalCache(info NodeInfo) error {
	if r.cfg.CacheDir == "" {
		return nil
	}
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return os.WriteFile(r.cacheFile(), data, 0o644)
}

func (r *Registry) loadLocalCache() (NodeInfo, error) {
	var info NodeInfo
	if r.cfg.CacheDir == "" {
		return info, os.ErrNotExist
	}
	data, err := os.ReadFile(r.cacheFile())
	if err != nil {
		return info, err
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return info, err
	}
	return info, nil
}

// WorkerID returns the leased worker id.
func (r *Registry) WorkerID() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.info.WorkerID
}

// Info returns a copy of the current registration record.
func (r *Registry) Info() NodeInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.info
}

func (r *Registry) nodeBytes() []byte {
	id := r.WorkerID()
	// multicast and locally administered: never a real IEEE 802 address
	return []byte{0x03, 0x00, byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
}

// HardwareAddr returns the node derived from the worker id. Its signature
// matches guuid.WithHardwareAddr.
func (r *Registry) HardwareAddr() (net.HardwareAddr, error) {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	return net.HardwareAddr(r.nodeBytes()), nil
}

// Node returns the worker node as a guuid.CustomNode for NewV1Custom.
func (r *Registry) Node() guuid.Node {
	return guuid.CustomNode(hex.EncodeToString(r.nodeBytes()))
}

// Close stops the heartbeat and closes the ZooKeeper connection.
func (r *Registry) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()

		close(r.stop)
		<-r.done
		r.conn.Close()
	})
	return nil
}
