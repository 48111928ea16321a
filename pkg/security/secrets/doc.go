// Package secrets resolves ${secret:name} references in credential values.
//
// A configuration may keep its keys out of the YAML file:
//
//	app:
//	  api_key: "${secret:admin-key}"
//	  public_key: "${secret:public-key}"
//
// Each name is looked up in order in the environment (KEYGATE_SECRET_ADMIN_KEY)
// and then in the secrets directory (security.secrets.dir/admin-key), the
// layout Docker and Kubernetes use for mounted secrets. References are
// resolved on every configuration load, so a reload picks up a replaced
// secret file.
//
// Secret values and full secret names are never logged.
package secrets
