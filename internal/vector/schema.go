package vector

// SchemaSQL defines the converter document table. The HNSW dimension must
// match the embedder's output dimension (all-minilm:l6-v2, 384).
const SchemaSQL = `
    DEFINE TABLE IF NOT EXISTS converter_doc SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS artnr ON converter_doc TYPE string;
    DEFINE FIELD IF NOT EXISTS content ON converter_doc TYPE string;
    DEFINE FIELD IF NOT EXISTS embedding ON converter_doc TYPE array<float>;
    DEFINE FIELD IF NOT EXISTS indexed_at ON converter_doc TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS converter_doc_artnr ON converter_doc FIELDS artnr UNIQUE;
    DEFINE INDEX IF NOT EXISTS converter_doc_embedding ON converter_doc FIELDS embedding HNSW DIMENSION 384 DIST COSINE TYPE F32;
    DEFINE ANALYZER IF NOT EXISTS converter_doc_analyzer TOKENIZERS class FILTERS lowercase, ascii, snowball(english);
    DEFINE INDEX IF NOT EXISTS converter_doc_content_ft ON converter_doc FIELDS content FULLTEXT ANALYZER converter_doc_analyzer BM25;
`
