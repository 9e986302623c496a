// Package config manages the vhostcfg application configuration stored in
// YAML format at ~/.config/vhostcfg/config.yaml.
//
// The configuration names the two conf files the engine operates on (the
// plain HTTP file and the certbot-written TLS file), the backup and renewal
// directories, the external syntax-check and reload commands, the command
// timeout, and the certbot account email.
//
// Example config.yaml:
//
//	http_conf: /etc/apache2/sites-available/vhosts.conf
//	ssl_conf: /etc/apache2/sites-available/vhosts-le-ssl.conf
//	backup_dir: /var/backups/vhostcfg
//	renewal_dir: /etc/letsencrypt/renewal
//	syntax_check_cmd: [apachectl, configtest]
//	reload_cmd: [systemctl, reload, apache2]
//	command_timeout: 30
//	certbot_email: admin@example.com
//
// A missing file yields defaults; nothing here touches the conf files
// themselves. Config operations are NOT thread-safe.
package config
