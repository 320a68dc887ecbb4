// Package vertex builds the Google image and vision adapter on top of Vertex AI
// instead of the Gemini API.
//
// Vertex AI is Google Cloud's AI platform. It serves the same Imagen and Gemini
// models using Google Cloud authentication (Application Default Credentials)
// instead of API keys, which suits deployments on GCP.
//
// # Authentication
//
// Vertex AI uses Application Default Credentials (ADC) which automatically
// discovers credentials in the following order:
//
//  1. GOOGLE_APPLICATION_CREDENTIALS environment variable (path to service account key)
//  2. gcloud CLI credentials (gcloud auth application-default login)
//  3. Attached service account (GKE Workload Identity, Compute Engine, Cloud Run)
//
// # Usage
//
//	backend, err := vertex.New(ctx, "my-project", "us-central1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	img, err := backend.SynthesizeImage(ctx, "imagen-4.0-generate-001", prompt, thumbpro.AspectLandscape)
//
// The client package selects this backend when THUMBPRO_VERTEX_PROJECT is set.
package vertex
