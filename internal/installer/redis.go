package installer

func redisStage() Stage {
	return Stage{
		Name: "redis",
		Enabled: func(st *State) bool {
			return st.Cfg.UseRedis && (st.Flags.App || st.Flags.Subs)
		},
		Run: func(st *State) error {
			pkg := "redis-server"
			if st.Sys.Family == FamilyRHEL {
				pkg = "redis"
			}
			if err := st.Run.Shell(st.Sys.PkgInstall + " " + pkg); err != nil {
				return err
			}
			// Read-modify-write on redis.conf: directives are replaced in
			// place, never duplicated.
			if err := SetConfDirective(st.Run, st.Paths.RedisConf, "maxmemory", st.Cfg.RedisMaxMemory); err != nil {
				return err
			}
			if err := SetConfDirective(st.Run, st.Paths.RedisConf, "maxmemory-policy", "allkeys-lru"); err != nil {
				return err
			}
			if err := st.Run.Shell("systemctl enable --now " + pkg); err != nil {
				return err
			}
			return st.Run.Shell("systemctl restart " + pkg)
		},
	}
}
