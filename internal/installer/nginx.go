package installer

import "fmt"

func nginxStage() Stage {
	return Stage{
		Name: "nginx",
		Enabled: func(st *State) bool {
			return st.Flags.WebServer
		},
		Run: func(st *State) error {
			if err := st.Run.Shell(st.Sys.PkgInstall + " nginx"); err != nil {
				return err
			}
			if err := st.Run.MkdirAll(st.Paths.NginxCacheDir, 0o750); err != nil {
				return err
			}

			// The vhost is a blind overwrite: idempotent because identical
			// input renders byte-identical output.
			text, err := renderString(nginxVhostTemplate, renderData{
				Domain:    st.Cfg.Domain,
				AppDir:    st.Cfg.AppDir,
				PHPSocket: st.PHPSocket(),
				CacheDir:  st.Paths.NginxCacheDir,
				EnableSSL: st.Cfg.EnableSSL,
			})
			if err != nil {
				return fmt.Errorf("render vhost: %w", err)
			}
			if err := st.Run.WriteFile(st.Paths.NginxSite, []byte(text), 0o644); err != nil {
				return err
			}

			if err := st.Run.Shell("nginx -t"); err != nil {
				return err
			}
			if err := st.Run.Shell("systemctl enable --now nginx"); err != nil {
				return err
			}
			if err := st.Run.Shell("systemctl reload nginx"); err != nil {
				return err
			}

			if st.Cfg.EnableSSL {
				if err := st.Run.Shell(st.Sys.PkgInstall + " certbot python3-certbot-nginx"); err != nil {
					return err
				}
				st.Run.Attempt(fmt.Sprintf(
					"certbot --nginx -d %s -m %s --agree-tos --non-interactive --redirect",
					st.Cfg.Domain, st.Cfg.LetsEncryptEmail))
				st.Run.Attempt("certbot renew --dry-run")
			}
			return nil
		},
	}
}
