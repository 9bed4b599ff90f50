package utils

import (
	"net"
	"strings"
)

// NormalizeIP 标准化主机上报的IP地址
// 去掉首尾空白和端口，IPv4-mapped IPv6 (::ffff:192.0.2.1) 转成纯 IPv4，
// IPv6 输出压缩形式；无法解析的值原样返回
func NormalizeIP(input string) string {
	ip := strings.TrimSpace(input)
	if ip == "" {
		return ""
	}

	// 去掉端口（host:port 或 [ipv6]:port）
	if h, _, err := net.SplitHostPort(ip); err == nil {
		ip = h
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ip
	}

	if v4 := parsed.To4(); v4 != nil {
		return v4.String()
	}

	return parsed.String()
}

// NormalizeHostname 去掉首尾空白和末尾的根域点
// 大小写保持不变，主机身份按原值精确匹配
func NormalizeHostname(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), ".")
}
