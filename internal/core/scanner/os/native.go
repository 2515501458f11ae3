package os

import (
	"context"
	"fmt"
	"sync"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"ttlfinger/internal/core/model"
)

// NativeProber 使用 pro-bing 直接发送 ICMP echo
// 不依赖系统 ping，输出按 Linux ping 的行格式合成，两种提取器都能直接使用
type NativeProber struct {
	timeout    time.Duration
	privileged bool
}

// NewNativeProber 创建原生探测器
// privileged 为 true 时使用 raw socket (Windows 必须，Linux 需要 root 或 CAP_NET_RAW)，
// 否则使用 unprivileged UDP ping (需要 net.ipv4.ping_group_range)
func NewNativeProber(timeout time.Duration, privileged bool) *NativeProber {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &NativeProber{timeout: timeout, privileged: privileged}
}

func (p *NativeProber) Probe(ctx context.Context, host string) *model.ProbeResult {
	start := time.Now()
	result := &model.ProbeResult{Host: host, Platform: PlatformNative}

	pinger, err := probing.NewPinger(host)
	if err != nil {
		result.Err = fmt.Errorf("resolve %s: %w", host, err)
		result.Duration = time.Since(start)
		return result
	}

	pinger.SetPrivileged(p.privileged)
	pinger.Count = 1
	pinger.Timeout = p.timeout

	var (
		mu    sync.Mutex
		reply string
	)
	pinger.OnRecv = func(pkt *probing.Packet) {
		mu.Lock()
		defer mu.Unlock()
		reply = formatReply(host, pkt.IPAddr.String(), pinger.Size, pkt.Nbytes, pkt.Seq, pkt.TTL, pkt.Rtt)
	}

	err = pinger.RunWithContext(ctx)
	result.Duration = time.Since(start)

	mu.Lock()
	result.Raw = reply
	mu.Unlock()

	switch {
	case err != nil:
		result.Err = fmt.Errorf("icmp echo %s: %w", host, err)
	case result.Raw == "":
		result.Err = ErrNoReply
	}
	return result
}

// formatReply 合成与 iputils ping 成功输出一致的文本:
//
//	PING 10.0.0.5 (10.0.0.5) 24(52) bytes of data.
//	32 bytes from 10.0.0.5: icmp_seq=0 ttl=64 time=0.412 ms
func formatReply(host, ip string, size, nbytes, seq, ttl int, rtt time.Duration) string {
	return fmt.Sprintf("PING %s (%s) %d(%d) bytes of data.\n%d bytes from %s: icmp_seq=%d ttl=%d time=%.3f ms\n",
		host, ip, size, size+28, nbytes, ip, seq, ttl, float64(rtt)/float64(time.Millisecond))
}
