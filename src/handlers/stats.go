/*
 * TgDownloaderBot - Telegram Media Downloader Bot
 *  Copyright (c) 2025 Ashok Shau
 *
 *  Licensed under GNU GPL v3
 *  See the LICENSE file in the project root
 */

package handlers

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"ashokshau/tgdownloader/config"
	"ashokshau/tgdownloader/src/core/cache"
	"ashokshau/tgdownloader/src/core/db"
	"ashokshau/tgdownloader/src/utils"

	"github.com/amarnathcjd/gogram/telegram"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"
)

type AppStats struct {
	Uptime     string
	Goroutines int
	GoVersion  string

	AppMemUsed string
	AppHeap    string
	GCCount    uint32

	CPUPercent float64
	SysMemUsed string
	SysMemAll  string
	DiskUsed   string
	DiskTotal  string

	Running  int
	Users    int
	Chats    int
	ByMethod map[string]int64
}

func appMemoryStats() (used, heap string, gc uint32) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return utils.HumanBytes(ms.Alloc), utils.HumanBytes(ms.HeapAlloc), ms.NumGC
}

// gatherAppStats collects host figures through gopsutil. Values it cannot read stay "N/A".
func gatherAppStats(ctx context.Context, diskPath string) *AppStats {
	memUsed, heap, gcCount := appMemoryStats()

	stats := &AppStats{
		Uptime:     time.Since(startTime).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		GoVersion:  runtime.Version(),
		AppMemUsed: memUsed,
		AppHeap:    heap,
		GCCount:    gcCount,
		SysMemUsed: "N/A",
		SysMemAll:  "N/A",
		DiskUsed:   "N/A",
		DiskTotal:  "N/A",
	}

	if percents, err := cpu.PercentWithContext(ctx, time.Second, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.SysMemUsed = utils.HumanBytes(vm.Used)
		stats.SysMemAll = utils.HumanBytes(vm.Total)
	}

	if usage, err := disk.UsageWithContext(ctx, diskPath); err == nil {
		stats.DiskUsed = utils.HumanBytes(usage.Used)
		stats.DiskTotal = utils.HumanBytes(usage.Total)
	}

	return stats
}

func formatStats(botName string, stats *AppStats) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 <b>%s Runtime Status</b>\n", botName))
	sb.WriteString(strings.Repeat("─", 36) + "\n\n")

	sb.WriteString("🤖 <b>Application</b>\n")
	sb.WriteString(fmt.Sprintf(
		"• Uptime: %s\n• Goroutines: %d\n• Go Version: %s\n• App Memory: %s (heap %s, %d GC runs)\n• Active Downloads: %d\n\n",
		stats.Uptime, stats.Goroutines, stats.GoVersion, stats.AppMemUsed, stats.AppHeap, stats.GCCount, stats.Running,
	))

	sb.WriteString("🖥 <b>Host</b>\n")
	sb.WriteString(fmt.Sprintf(
		"• CPU: %.1f%%\n• Memory: %s / %s\n• Downloads Disk: %s / %s\n\n",
		stats.CPUPercent, stats.SysMemUsed, stats.SysMemAll, stats.DiskUsed, stats.DiskTotal,
	))

	sb.WriteString("📦 <b>Database</b>\n")
	sb.WriteString(fmt.Sprintf("• Chats: %d\n• Users: %d\n", stats.Chats, stats.Users))

	if len(stats.ByMethod) > 0 {
		methods := make([]string, 0, len(stats.ByMethod))
		for method := range stats.ByMethod {
			methods = append(methods, method)
		}
		sort.Strings(methods)

		sb.WriteString("\n⬇️ <b>Downloads</b>\n")
		for _, method := range methods {
			sb.WriteString(fmt.Sprintf("• %s: %d\n", method, stats.ByMethod[method]))
		}
	}

	sb.WriteString("\n" + strings.Repeat("─", 36))
	return sb.String()
}

func sysStatsHandler(msg *telegram.NewMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sysMsg, err := msg.Reply("📊 Collecting system statistics...")
	if err != nil {
		return err
	}

	stats := gatherAppStats(ctx, config.Conf.DownloadsDir)
	stats.Running = cache.Running()

	chats, _ := db.Instance.GetAllChats(ctx)
	users, _ := db.Instance.GetAllUsers(ctx)
	stats.Chats = len(chats)
	stats.Users = len(users)

	byMethod, err := db.Instance.DownloadsByMethod(ctx)
	if err != nil {
		logger.Warn("Failed to count downloads: %v", err)
	}
	stats.ByMethod = byMethod

	_, err = sysMsg.Edit(formatStats(msg.Client.Me().FirstName, stats))
	return err
}
