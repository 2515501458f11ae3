package os

// 真实 ping 输出样本
const (
	linuxReply = "PING 10.0.0.8 (10.0.0.8) 56(84) bytes of data.\n" +
		"64 bytes from 10.0.0.8: icmp_seq=1 ttl=64 time=0.045 ms\n" +
		"\n" +
		"--- 10.0.0.8 ping statistics ---\n" +
		"1 packets transmitted, 1 received, 0% packet loss, time 0ms\n" +
		"rtt min/avg/max/mdev = 0.045/0.045/0.045/0.000 ms\n"

	windowsReply = "\r\nPinging 10.0.0.5 with 32 bytes of data:\r\n" +
		"Reply from 10.0.0.5: bytes=32 time<1ms TTL=128\r\n" +
		"\r\n" +
		"Ping statistics for 10.0.0.5:\r\n" +
		"    Packets: Sent = 1, Received = 1, Lost = 0 (0% loss),\r\n" +
		"Approximate round trip times in milli-seconds:\r\n" +
		"    Minimum = 0ms, Maximum = 0ms, Average = 0ms\r\n"

	windowsChineseReply = "\r\n正在 Ping 10.0.0.5 具有 32 字节的数据:\r\n" +
		"来自 10.0.0.5 的回复: 字节=32 时间<1ms TTL=128\r\n"

	linuxUnreachable = "PING 10.0.0.9 (10.0.0.9) 56(84) bytes of data.\n" +
		"From 10.0.0.1 icmp_seq=1 Destination Host Unreachable\n" +
		"\n" +
		"--- 10.0.0.9 ping statistics ---\n" +
		"1 packets transmitted, 0 received, +1 errors, 100% packet loss, time 0ms\n"

	// 第 12 个空格分隔 token 为 "Packets:"，固定偏移切出 "ets"
	offsetEtsArtifact = "a b c d e f g h i j k Packets: Sent = 1"
)
