package main

import (
	"context"

	"github.com/faust64/pakiti3/internal/app/pakiti/setup"
	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/model/vuln"
	"github.com/faust64/pakiti3/internal/pkg/logger"
	vulnRepo "github.com/faust64/pakiti3/internal/repo/mysql/vuln"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DataSeeder 演示数据填充器
// 通过管理器写入，重复执行不会产生重复数据
type DataSeeder struct {
	db  *gorm.DB
	log *logger.LoggerManager
}

// NewDataSeeder 创建数据填充器
func NewDataSeeder(db *gorm.DB, log *logger.LoggerManager) *DataSeeder {
	return &DataSeeder{db: db, log: log}
}

var seedHosts = []host.Host{
	{Hostname: "web01.example.com", ReporterHostname: "web01.example.com", IP: "192.0.2.11", ReporterIP: "192.0.2.11", Kernel: "5.14.0-362.el9", Type: "rpm", OsName: "Rocky Linux 9.3", ArchName: "x86_64", DomainName: "example.com"},
	{Hostname: "web02.example.com", ReporterHostname: "web02.example.com", IP: "192.0.2.12", ReporterIP: "192.0.2.12", Kernel: "5.14.0-362.el9", Type: "rpm", OsName: "Rocky Linux 9.3", ArchName: "x86_64", DomainName: "example.com"},
	{Hostname: "db01.example.org", ReporterHostname: "db01.example.org", IP: "198.51.100.5", ReporterIP: "198.51.100.5", Kernel: "6.1.0-18-amd64", Type: "dpkg", OsName: "Debian 12", ArchName: "amd64", DomainName: "example.org"},
}

// SeedAll 填充主机、标签、软件包和CVE例外
func (s *DataSeeder) SeedAll(ctx context.Context) error {
	hosts := setup.BuildHostModule(s.db, nil)
	vulns := setup.BuildVulnModule(s.db)

	stored := make([]*host.Host, 0, len(seedHosts))
	for i := range seedHosts {
		h := seedHosts[i]
		created, err := hosts.HostsManager.StoreHost(ctx, &h)
		if err != nil {
			return err
		}
		stored = append(stored, &h)
		s.log.GetLogger().WithFields(logrus.Fields{
			"hostname": h.Hostname,
			"created":  created,
		}).Debug("seed host")
	}

	tagID, found, err := hosts.TagsManager.GetTagIDByName(ctx, "web")
	if err != nil {
		return err
	}
	tag := &host.Tag{Name: "web"}
	tag.ID = tagID
	if !found {
		if tag, err = hosts.TagsManager.CreateTag(ctx, "web", "public web servers"); err != nil {
			return err
		}
	}
	for _, h := range stored[:2] {
		if err := hosts.TagsManager.AssignTagToHost(ctx, h, tag); err != nil {
			return err
		}
	}

	pkg := &vuln.Pkg{Name: "openssl", Version: "3.0.7", Release: "25.el9_3", Arch: "x86_64", Type: "rpm"}
	if err := vulnRepo.NewPkgRepository(s.db).FirstOrCreate(ctx, pkg); err != nil {
		return err
	}
	existing, err := vulns.CveExceptionsManager.GetCveExceptionsByCveName(ctx, "CVE-2023-0286")
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		_, err = vulns.CveExceptionsManager.CreateCveException(ctx, &vuln.CveException{
			PkgID:    pkg.ID,
			CveName:  "CVE-2023-0286",
			Reason:   "fixed by vendor backport",
			Modifier: "migrate",
		})
		if err != nil {
			return err
		}
	}

	s.log.GetLogger().WithFields(logrus.Fields{
		"path":      "cmd/migrate/seed.go",
		"operation": "seed_data",
		"hosts":     len(stored),
	}).Info("演示数据填充完成")
	return nil
}
