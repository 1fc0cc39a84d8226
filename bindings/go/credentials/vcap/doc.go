// Package vcap resolves the entry of a named cloud service from a service catalog.
//
// A service catalog is a JSON object that maps service types to lists of service
// entries, in the format cloud platforms hand out in the VCAP_SERVICES environment
// variable:
//
//	{
//	  "streaming-analytics": [
//	    {"name": "service-1", "credentials": {"apikey": "...", "v2_rest_url": "..."}}
//	  ]
//	}
//
// The catalog and the service name are taken from deployment Properties first and
// from environment variables second. Environment access goes through Resolver.LookupEnv,
// so the resolution chain can be fully controlled by the caller.
package vcap
