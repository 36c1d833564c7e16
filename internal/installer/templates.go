package installer

// Static configuration content. These are data, not logic: the vhost and
// supervisor program files are blind overwrites, idempotent because
// identical input renders identical output.

const nginxVhostTemplate = `# Managed by nexus-setup. Manual edits will be overwritten on re-run.
fastcgi_cache_path {{.CacheDir}} levels=1:2 keys_zone=nexus:10m max_size=256m inactive=60m;

server {
    listen 80;
    server_name {{.Domain}};

    root {{.AppDir}}/public;
    index index.php;

    charset utf-8;
    client_max_body_size 32m;

    access_log /var/log/nginx/nexus.access.log;
    error_log /var/log/nginx/nexus.error.log;

    location / {
        try_files $uri $uri/ /index.php?$query_string;
    }

    location ~ \.php$ {
        fastcgi_pass unix:{{.PHPSocket}};
        fastcgi_index index.php;
        fastcgi_param SCRIPT_FILENAME $realpath_root$fastcgi_script_name;
        include fastcgi_params;
        fastcgi_buffer_size 16k;
        fastcgi_buffers 16 16k;
    }

    location ~* \.(css|js|gif|ico|jpg|jpeg|png|svg|woff2?)$ {
        expires 7d;
        add_header Cache-Control "public";
        open_file_cache max=1000 inactive=30s;
    }

    location ~ /\.(?!well-known).* {
        deny all;
    }
}
`

const supervisorProgramTemplate = `; Managed by nexus-setup. Manual edits will be overwritten on re-run.
[program:{{.AppName}}]
command={{.Command}}
directory={{.AppDir}}
user={{.WebUser}}
numprocs={{.Procs}}
process_name=%(program_name)s_%(process_num)02d
autostart=true
autorestart=true
stopasgroup=true
killasgroup=true
redirect_stderr=true
stdout_logfile={{.LogFile}}
stopwaitsecs=3600
`
